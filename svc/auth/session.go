package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hustwenchao/bookshelf/pkg/cookie"
	"github.com/hustwenchao/bookshelf/pkg/jwt"
)

// SessionConfig configures session token minting and the session cookie.
type SessionConfig struct {
	Secret     string        `env:"AUTH_SECRET,required"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`
	Issuer     string        `env:"SESSION_ISSUER" envDefault:"bookshelf"`
}

const (
	defaultSessionTTL    = 30 * 24 * time.Hour
	defaultSessionCookie = "session_token"
)

// SessionManager mints and validates stateless session tokens and moves them
// in and out of HTTP requests.
type SessionManager struct {
	tokens     *jwt.Service
	cookies    *cookie.Manager
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

type SessionOption func(*SessionManager)

// WithSessionClock overrides the time source for minting and validation.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) SessionOption {
	return func(m *SessionManager) { m.secure = secure }
}

func NewSessionManager(cfg SessionConfig, cookies *cookie.Manager, opts ...SessionOption) (*SessionManager, error) {
	m := &SessionManager{
		cookies:    cookies,
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		now:        time.Now,
	}
	if m.ttl <= 0 {
		m.ttl = defaultSessionTTL
	}
	if m.cookieName == "" {
		m.cookieName = defaultSessionCookie
	}
	for _, opt := range opts {
		opt(m)
	}

	tokens, err := jwt.NewFromString(cfg.Secret,
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithClock(func() time.Time { return m.now() }),
	)
	if err != nil {
		return nil, err
	}
	m.tokens = tokens
	return m, nil
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"picture,omitempty"`
	Role        Role   `json:"role"`
	AccessToken string `json:"access_token,omitempty"`
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Mint issues a token for user. The role is fixed for the token lifetime.
func (m *SessionManager) Mint(user *User, accessToken string) (string, Session, error) {
	now := m.now().Truncate(time.Second)
	s := Session{
		UserID:      user.ID.Hex(),
		Email:       user.Email,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		Role:        user.Role,
		AccessToken: accessToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(m.ttl),
	}

	token, err := m.tokens.Generate(&sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			Issuer:    m.tokens.Issuer(),
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		Email:       s.Email,
		Name:        s.Name,
		AvatarURL:   s.AvatarURL,
		Role:        s.Role,
		AccessToken: s.AccessToken,
	})
	if err != nil {
		return "", Session{}, err
	}
	return token, s, nil
}

// Validate verifies token and returns its session. Expired tokens yield
// ErrExpiredSession; every other defect yields ErrInvalidSignature.
func (m *SessionManager) Validate(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrMissingSession
	}

	var c sessionClaims
	if err := m.tokens.Parse(token, &c); err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return Session{}, errors.Join(ErrExpiredSession, err)
		}
		return Session{}, errors.Join(ErrInvalidSignature, err)
	}
	if c.ExpiresAt == nil || c.Subject == "" {
		return Session{}, ErrInvalidSignature
	}

	s := Session{
		UserID:      c.Subject,
		Email:       c.Email,
		Name:        c.Name,
		AvatarURL:   c.AvatarURL,
		Role:        c.Role,
		AccessToken: c.AccessToken,
		ExpiresAt:   c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	return s, nil
}

// SetCookie writes token as the session cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, token string) {
	m.cookies.Set(w, m.cookieName, token, m.cookieOptions(cookie.WithMaxAge(int(m.ttl.Seconds())))...)
}

func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	m.cookies.Delete(w, m.cookieName, m.cookieOptions()...)
}

func (m *SessionManager) cookieOptions(extra ...cookie.Option) []cookie.Option {
	opts := []cookie.Option{
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if m.secure {
		opts = append(opts, cookie.WithSecure(true))
	}
	return append(opts, extra...)
}

// TokenFromRequest reads the session cookie, falling back to a bearer
// Authorization header.
func (m *SessionManager) TokenFromRequest(r *http.Request) string {
	if v, err := m.cookies.Get(r, m.cookieName); err == nil && v != "" {
		return v
	}
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

// FromRequest validates the token carried by r.
func (m *SessionManager) FromRequest(r *http.Request) (Session, error) {
	return m.Validate(m.TokenFromRequest(r))
}
