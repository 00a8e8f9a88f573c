package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig configures the Google adapter. RedirectURL defaults to
// {APP_BASE_URL}/auth/google/callback when empty.
type GoogleOAuthConfig struct {
	ClientID     string        `env:"GOOGLE_ID"`
	ClientSecret string        `env:"GOOGLE_SECRET"`
	RedirectURL  string        `env:"GOOGLE_REDIRECT_URL"`
	Scopes       []string      `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
	Timeout      time.Duration `env:"GOOGLE_TIMEOUT" envDefault:"10s"`
}

func (c GoogleOAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

type googleAdapter struct {
	conf        *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
	timeout     time.Duration
}

func NewGoogleAdapter(cfg GoogleOAuthConfig) ProviderAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:  &http.Client{Timeout: timeout},
		userInfoURL: googleUserInfoURL,
		timeout:     timeout,
	}
}

func (a *googleAdapter) ProviderID() string { return ProviderGoogle }

// AuthURL requests offline access and forces the consent screen so a refresh
// token is issued on every sign-in.
func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (a *googleAdapter) Exchange(ctx context.Context, code string) (Identity, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return Identity{}, "", fmt.Errorf("%w: google token: %w", ErrIdentityExchange, err)
	}

	var u googleUser
	if err := getJSON(ctx, a.httpClient, a.userInfoURL, tok.AccessToken, &u); err != nil {
		return Identity{}, "", fmt.Errorf("%w: google userinfo: %w", ErrIdentityExchange, err)
	}

	return Identity{
		Provider:      ProviderGoogle,
		ProviderID:    u.Sub,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Name:          u.Name,
		AvatarURL:     u.Picture,
	}, tok.AccessToken, nil
}

type googleUser struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

var _ ProviderAdapter = (*googleAdapter)(nil)
