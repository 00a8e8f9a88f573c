package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hustwenchao/bookshelf/pkg/environment"
	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/metrics"
)

// Sign-in results reported to metrics.
const (
	resultSuccess        = "success"
	resultExchangeFailed = "exchange_failed"
	resultMissingEmail   = "missing_email"
	resultUnverified     = "unverified_email"
	resultStorageFailed  = "storage_failed"
)

// Service orchestrates sign-in and self-promotion.
type Service struct {
	adapters map[string]ProviderAdapter
	resolver *RoleResolver
	sessions *SessionManager
	storage  UserStorage
	metrics  metrics.Recorder
	logger   *slog.Logger
}

type ServiceOption func(*Service)

func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithServiceMetrics(r metrics.Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithProviders registers identity provider adapters by their ProviderID.
func WithProviders(adapters ...ProviderAdapter) ServiceOption {
	return func(s *Service) {
		for _, a := range adapters {
			if a != nil {
				s.adapters[a.ProviderID()] = a
			}
		}
	}
}

func NewService(resolver *RoleResolver, sessions *SessionManager, storage UserStorage, opts ...ServiceOption) *Service {
	s := &Service{
		adapters: make(map[string]ProviderAdapter),
		resolver: resolver,
		sessions: sessions,
		storage:  storage,
		metrics:  metrics.Noop{},
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Providers lists the registered provider ids in sorted order.
func (s *Service) Providers() []string {
	ids := make([]string, 0, len(s.adapters))
	for id := range s.adapters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Service) adapter(provider string) (ProviderAdapter, error) {
	a, ok := s.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return a, nil
}

// LoginURL returns the provider authorization URL and the state it carries.
func (s *Service) LoginURL(provider string) (string, string, error) {
	a, err := s.adapter(provider)
	if err != nil {
		return "", "", err
	}
	state, err := generateState()
	if err != nil {
		return "", "", err
	}
	return a.AuthURL(state), state, nil
}

// SignIn exchanges code with the provider, resolves the user's role and
// mints a session token.
func (s *Service) SignIn(ctx context.Context, provider, code string) (string, Session, error) {
	a, err := s.adapter(provider)
	if err != nil {
		return "", Session{}, err
	}

	start := time.Now()
	identity, accessToken, err := a.Exchange(ctx, code)
	if err != nil {
		s.metrics.SignIn(provider, resultExchangeFailed)
		s.logger.WarnContext(ctx, "identity exchange failed",
			logger.Provider(provider),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return "", Session{}, err
	}

	user, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		result := resultStorageFailed
		switch {
		case errors.Is(err, ErrMissingEmail):
			result = resultMissingEmail
		case errors.Is(err, ErrUnverifiedEmail):
			result = resultUnverified
		}
		s.metrics.SignIn(provider, result)
		s.logger.ErrorContext(ctx, "sign-in rejected",
			logger.Provider(provider),
			logger.Error(err),
		)
		return "", Session{}, err
	}

	token, session, err := s.sessions.Mint(user, accessToken)
	if err != nil {
		s.metrics.SignIn(provider, resultStorageFailed)
		return "", Session{}, fmt.Errorf("mint session: %w", err)
	}

	s.metrics.SignIn(provider, resultSuccess)
	s.logger.InfoContext(ctx, "user signed in",
		logger.Provider(provider),
		logger.UserID(session.UserID),
		logger.Role(session.Role),
	)
	return token, session, nil
}

// PromoteSelf grants the admin role to the session's own user. It only
// works in the development environment; the new role appears in the
// session after the next sign-in.
func (s *Service) PromoteSelf(ctx context.Context, session Session) error {
	if !environment.IsDevelopment(ctx) {
		return ErrSelfPromotionDisabled
	}
	if session.Email == "" {
		return ErrMissingSession
	}
	if err := s.storage.SetRole(ctx, session.Email, RoleAdmin); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user promoted to admin", logger.UserID(session.UserID))
	return nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
