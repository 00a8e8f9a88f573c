package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/sanitizer"
)

// RoleResolver derives a role from the allow list and keeps the user record
// in sync with the latest identity.
type RoleResolver struct {
	allow        AllowList
	storage      UserStorage
	verifiedOnly bool
	logger       *slog.Logger
}

type RoleResolverOption func(*RoleResolver)

func WithResolverLogger(l *slog.Logger) RoleResolverOption {
	return func(r *RoleResolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerifiedOnly controls whether identities with an unverified email are
// rejected. Enabled by default.
func WithVerifiedOnly(verifiedOnly bool) RoleResolverOption {
	return func(r *RoleResolver) {
		r.verifiedOnly = verifiedOnly
	}
}

func NewRoleResolver(allow AllowList, storage UserStorage, opts ...RoleResolverOption) *RoleResolver {
	r := &RoleResolver{
		allow:        allow,
		storage:      storage,
		verifiedOnly: true,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RoleFor returns RoleAdmin when any allow list entry matches the identity
// by non-empty provider id or by non-empty email, RoleUser otherwise.
func (r *RoleResolver) RoleFor(identity Identity) Role {
	email := sanitizer.NormalizeEmail(identity.Email)
	for _, entry := range r.allow {
		if entry.ProviderID != "" && entry.ProviderID == identity.ProviderID {
			return RoleAdmin
		}
		if entry.Email != "" && email != "" && strings.EqualFold(entry.Email, email) {
			return RoleAdmin
		}
	}
	return RoleUser
}

// Resolve computes the role for identity and upserts the user record. An
// identity without an email, or with an unverified one when verifiedOnly is
// set, is rejected before the allow list or storage is consulted.
func (r *RoleResolver) Resolve(ctx context.Context, identity Identity) (*User, error) {
	identity.Email = sanitizer.NormalizeEmail(identity.Email)
	if identity.Email == "" {
		r.logger.WarnContext(ctx, "identity without email rejected",
			logger.Provider(identity.Provider),
			slog.String("provider_id", identity.ProviderID),
		)
		return nil, ErrMissingEmail
	}
	if r.verifiedOnly && !identity.EmailVerified {
		r.logger.WarnContext(ctx, "identity with unverified email rejected",
			logger.Provider(identity.Provider),
			slog.String("provider_id", identity.ProviderID),
		)
		return nil, ErrUnverifiedEmail
	}

	role := r.RoleFor(identity)
	user, err := r.storage.UpsertUser(ctx, identity, role)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}
