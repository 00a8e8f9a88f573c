package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "valid-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "bad_verification_code"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURL:  "https://example.com/callback",
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestGitHubAdapter_AuthURL(t *testing.T) {
	t.Parallel()

	adapter := NewGitHubAdapter(GitHubOAuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURL:  "https://example.com/callback",
		Scopes:       []string{"read:user", "user:email"},
	})

	assert.Equal(t, ProviderGitHub, adapter.ProviderID())

	authURL := adapter.AuthURL("test-state")
	assert.Contains(t, authURL, "github.com/login/oauth/authorize")
	assert.Contains(t, authURL, "client_id=test-client-id")
	assert.Contains(t, authURL, "state=test-state")
	assert.Contains(t, authURL, "read%3Auser+user%3Aemail")
	assert.NotContains(t, authURL, "access_type=offline")
}

func TestGitHubAdapter_Exchange(t *testing.T) {
	t.Parallel()

	t.Run("uses profile email when public", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
			assert.Equal(t, "/user", r.URL.Path)
			_ = json.NewEncoder(w).Encode(ghUser{
				ID:        5675117,
				Login:     "hustwenchao",
				Email:     "hustwenchao@gmail.com",
				AvatarURL: "https://avatars.example.com/u/5675117",
			})
		}))
		defer apiSrv.Close()

		adapter := NewGitHubAdapter(GitHubOAuthConfig{}).(*githubAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.apiBaseURL = apiSrv.URL

		id, token, err := adapter.Exchange(context.Background(), "valid-code")
		require.NoError(t, err)
		assert.Equal(t, "test-access-token", token)
		assert.Equal(t, Identity{
			Provider:      ProviderGitHub,
			ProviderID:    "5675117",
			Email:         "hustwenchao@gmail.com",
			EmailVerified: true,
			Name:          "hustwenchao",
			AvatarURL:     "https://avatars.example.com/u/5675117",
		}, id)
	})

	t.Run("falls back to primary verified email", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/user":
				_ = json.NewEncoder(w).Encode(ghUser{ID: 12345, Name: "Reader"})
			case "/user/emails":
				_ = json.NewEncoder(w).Encode([]ghEmail{
					{Email: "unverified@example.com", Primary: false, Verified: false},
					{Email: "secondary@example.com", Primary: false, Verified: true},
					{Email: "primary@example.com", Primary: true, Verified: true},
				})
			default:
				t.Errorf("unexpected request to %s", r.URL.Path)
			}
		}))
		defer apiSrv.Close()

		adapter := NewGitHubAdapter(GitHubOAuthConfig{}).(*githubAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.apiBaseURL = apiSrv.URL

		id, _, err := adapter.Exchange(context.Background(), "valid-code")
		require.NoError(t, err)
		assert.Equal(t, "primary@example.com", id.Email)
		assert.True(t, id.EmailVerified)
		assert.Equal(t, "Reader", id.Name)
	})

	t.Run("reports unverified primary email", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/user":
				_ = json.NewEncoder(w).Encode(ghUser{ID: 777, Login: "newcomer"})
			case "/user/emails":
				_ = json.NewEncoder(w).Encode([]ghEmail{
					{Email: "hustwenchao@gmail.com", Primary: true, Verified: false},
				})
			}
		}))
		defer apiSrv.Close()

		adapter := NewGitHubAdapter(GitHubOAuthConfig{}).(*githubAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.apiBaseURL = apiSrv.URL

		id, _, err := adapter.Exchange(context.Background(), "valid-code")
		require.NoError(t, err)
		assert.Equal(t, "hustwenchao@gmail.com", id.Email)
		assert.False(t, id.EmailVerified)
	})

	t.Run("invalid code", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		adapter := NewGitHubAdapter(GitHubOAuthConfig{}).(*githubAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)

		_, _, err := adapter.Exchange(context.Background(), "expired-code")
		assert.ErrorIs(t, err, ErrIdentityExchange)
	})

	t.Run("profile endpoint failure", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer apiSrv.Close()

		adapter := NewGitHubAdapter(GitHubOAuthConfig{}).(*githubAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.apiBaseURL = apiSrv.URL

		_, _, err := adapter.Exchange(context.Background(), "valid-code")
		assert.ErrorIs(t, err, ErrIdentityExchange)
	})
}

func TestPickGitHubEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		emails       []ghEmail
		wantEmail    string
		wantVerified bool
	}{
		{
			name: "primary verified first",
			emails: []ghEmail{
				{Email: "a@x.io", Verified: true},
				{Email: "b@x.io", Primary: true, Verified: true},
			},
			wantEmail:    "b@x.io",
			wantVerified: true,
		},
		{
			name: "any verified before unverified primary",
			emails: []ghEmail{
				{Email: "p@x.io", Primary: true},
				{Email: "a@x.io", Verified: true},
			},
			wantEmail:    "a@x.io",
			wantVerified: true,
		},
		{
			name:      "unverified primary only",
			emails:    []ghEmail{{Email: "p@x.io", Primary: true}},
			wantEmail: "p@x.io",
		},
		{
			name:   "none",
			emails: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, verified := pickGitHubEmail(tt.emails)
			assert.Equal(t, tt.wantEmail, email)
			assert.Equal(t, tt.wantVerified, verified)
		})
	}
}

func TestGoogleAdapter_AuthURL(t *testing.T) {
	t.Parallel()

	adapter := NewGoogleAdapter(GoogleOAuthConfig{
		ClientID:     "google-client",
		ClientSecret: "google-secret",
		RedirectURL:  "https://example.com/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
	})

	assert.Equal(t, ProviderGoogle, adapter.ProviderID())

	authURL := adapter.AuthURL("st")
	assert.Contains(t, authURL, "accounts.google.com")
	assert.Contains(t, authURL, "access_type=offline")
	assert.Contains(t, authURL, "prompt=consent")
	assert.Contains(t, authURL, "state=st")
	assert.Contains(t, authURL, "openid+email+profile")
}

func TestGoogleAdapter_Exchange(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(googleUser{
				Sub:           "1098",
				Email:         "reader@gmail.com",
				EmailVerified: true,
				Name:          "Reader",
				Picture:       "https://lh3.example.com/p.jpg",
			})
		}))
		defer infoSrv.Close()

		adapter := NewGoogleAdapter(GoogleOAuthConfig{}).(*googleAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.userInfoURL = infoSrv.URL

		id, token, err := adapter.Exchange(context.Background(), "valid-code")
		require.NoError(t, err)
		assert.Equal(t, "test-access-token", token)
		assert.Equal(t, ProviderGoogle, id.Provider)
		assert.Equal(t, "1098", id.ProviderID)
		assert.Equal(t, "reader@gmail.com", id.Email)
		assert.True(t, id.EmailVerified)
		assert.Equal(t, "https://lh3.example.com/p.jpg", id.AvatarURL)
	})

	t.Run("carries unverified email flag", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(googleUser{
				Sub:           "attacker-sub",
				Email:         "hustwenchao@gmail.com",
				EmailVerified: false,
			})
		}))
		defer infoSrv.Close()

		adapter := NewGoogleAdapter(GoogleOAuthConfig{}).(*googleAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)
		adapter.userInfoURL = infoSrv.URL

		id, _, err := adapter.Exchange(context.Background(), "valid-code")
		require.NoError(t, err)
		assert.Equal(t, "hustwenchao@gmail.com", id.Email)
		assert.False(t, id.EmailVerified)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		tokenSrv := newTokenServer(t)
		adapter := NewGoogleAdapter(GoogleOAuthConfig{}).(*googleAdapter)
		adapter.conf = testOAuthConfig(tokenSrv.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := adapter.Exchange(ctx, "valid-code")
		assert.ErrorIs(t, err, ErrIdentityExchange)
	})
}
