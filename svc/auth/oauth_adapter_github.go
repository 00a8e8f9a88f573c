package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubOAuthConfig configures the GitHub adapter. RedirectURL defaults to
// {APP_BASE_URL}/auth/github/callback when empty.
type GitHubOAuthConfig struct {
	ClientID     string        `env:"GITHUB_ID"`
	ClientSecret string        `env:"GITHUB_SECRET"`
	RedirectURL  string        `env:"GITHUB_REDIRECT_URL"`
	Scopes       []string      `env:"GITHUB_SCOPES" envSeparator:"," envDefault:"read:user,user:email"`
	Timeout      time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether client credentials are configured.
func (c GitHubOAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

const githubAPIBaseURL = "https://api.github.com"

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
	apiBaseURL string
	timeout    time.Duration
}

func NewGitHubAdapter(cfg GitHubOAuthConfig) ProviderAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: timeout},
		apiBaseURL: githubAPIBaseURL,
		timeout:    timeout,
	}
}

func (a *githubAdapter) ProviderID() string { return ProviderGitHub }

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state)
}

func (a *githubAdapter) Exchange(ctx context.Context, code string) (Identity, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return Identity{}, "", fmt.Errorf("%w: github token: %w", ErrIdentityExchange, err)
	}

	var u ghUser
	if err := getJSON(ctx, a.httpClient, a.apiBaseURL+"/user", tok.AccessToken, &u); err != nil {
		return Identity{}, "", fmt.Errorf("%w: github user: %w", ErrIdentityExchange, err)
	}

	// GitHub only exposes a public profile email once it has been verified.
	email, verified := u.Email, u.Email != ""
	if email == "" {
		var emails []ghEmail
		if err := getJSON(ctx, a.httpClient, a.apiBaseURL+"/user/emails", tok.AccessToken, &emails); err != nil {
			return Identity{}, "", fmt.Errorf("%w: github emails: %w", ErrIdentityExchange, err)
		}
		email, verified = pickGitHubEmail(emails)
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}

	return Identity{
		Provider:      ProviderGitHub,
		ProviderID:    strconv.FormatInt(u.ID, 10),
		Email:         email,
		EmailVerified: verified,
		Name:          name,
		AvatarURL:     u.AvatarURL,
	}, tok.AccessToken, nil
}

// pickGitHubEmail prefers the primary verified address, then any verified
// one. Without a verified address it falls back to the primary address and
// reports it as unverified.
func pickGitHubEmail(emails []ghEmail) (string, bool) {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, true
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, true
		}
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, false
		}
	}
	return "", false
}

type ghUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type ghEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

var _ ProviderAdapter = (*githubAdapter)(nil)
