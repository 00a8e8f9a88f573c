package main

import (
	"errors"
	"strings"

	"github.com/hustwenchao/bookshelf/pkg/config"
	"github.com/hustwenchao/bookshelf/pkg/cookie"
	"github.com/hustwenchao/bookshelf/pkg/httpserver"
	"github.com/hustwenchao/bookshelf/pkg/mongo"
	"github.com/hustwenchao/bookshelf/pkg/ratelimiter"
	"github.com/hustwenchao/bookshelf/svc/auth"
)

// AppConfig holds process-wide settings.
type AppConfig struct {
	Env            string `env:"APP_ENV" envDefault:"production"`
	Name           string `env:"APP_NAME" envDefault:"bookshelf"`
	BaseURL        string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	SuccessPage    string `env:"SIGNIN_SUCCESS_PAGE" envDefault:"/"`
	ErrorPage      string `env:"SIGNIN_ERROR_PAGE" envDefault:"/auth/error"`
	AdminAllowList string `env:"ADMIN_ALLOW_LIST"`
	VerifiedOnly   bool   `env:"AUTH_VERIFIED_ONLY" envDefault:"true"`
}

// callbackURL returns the provider callback on the public base URL.
func (c AppConfig) callbackURL(provider string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/auth/" + provider + "/callback"
}

type configs struct {
	app         AppConfig
	mongo       mongo.Config
	http        httpserver.Config
	github      auth.GitHubOAuthConfig
	google      auth.GoogleOAuthConfig
	session     auth.SessionConfig
	cookie      cookie.Config
	rateLimiter ratelimiter.Config
}

func loadConfigs() (configs, error) {
	var c configs
	err := errors.Join(
		config.Load(&c.app),
		config.Load(&c.mongo),
		config.Load(&c.http),
		config.Load(&c.github),
		config.Load(&c.google),
		config.Load(&c.session),
		config.Load(&c.cookie),
		config.Load(&c.rateLimiter),
	)
	if err != nil {
		return configs{}, err
	}

	if c.github.RedirectURL == "" {
		c.github.RedirectURL = c.app.callbackURL(auth.ProviderGitHub)
	}
	if c.google.RedirectURL == "" {
		c.google.RedirectURL = c.app.callbackURL(auth.ProviderGoogle)
	}
	return c, nil
}
