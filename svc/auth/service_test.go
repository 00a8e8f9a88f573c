package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hustwenchao/bookshelf/pkg/environment"
)

type serviceFixture struct {
	svc      *Service
	storage  *MockUserStorage
	adapter  *MockProviderAdapter
	metrics  *MockRecorder
	sessions *SessionManager
}

func newServiceFixture(t *testing.T, allow AllowList) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		storage:  &MockUserStorage{},
		adapter:  newMockAdapter(ProviderGitHub),
		metrics:  &MockRecorder{},
		sessions: newTestSessions(t),
	}
	f.svc = NewService(
		NewRoleResolver(allow, f.storage),
		f.sessions,
		f.storage,
		WithProviders(f.adapter, newMockAdapter(ProviderGoogle)),
		WithServiceMetrics(f.metrics),
	)
	return f
}

func TestService_Providers(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, nil)
	assert.Equal(t, []string{ProviderGitHub, ProviderGoogle}, f.svc.Providers())
}

func TestService_LoginURL(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, nil)

	var states []string
	f.adapter.On("AuthURL", mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		states = append(states, args.String(0))
	}).Return("https://github.com/login/oauth/authorize?state=x").Twice()

	u1, s1, err := f.svc.LoginURL(ProviderGitHub)
	require.NoError(t, err)
	_, s2, err := f.svc.LoginURL(ProviderGitHub)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/login/oauth/authorize?state=x", u1)
	assert.Equal(t, []string{s1, s2}, states)
	assert.NotEqual(t, s1, s2)
	assert.Len(t, s1, 43)

	_, _, err = f.svc.LoginURL("gitlab")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestService_SignIn(t *testing.T) {
	t.Parallel()

	t.Run("allow-listed identity becomes admin", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, ownerAllowList)
		identity := Identity{Provider: ProviderGitHub, ProviderID: "5675117", Email: "x@y.com", EmailVerified: true, Name: "Wen"}
		user := &User{ID: bson.NewObjectID(), Email: "x@y.com", Name: "Wen", Role: RoleAdmin}

		f.adapter.On("Exchange", mock.Anything, "code-1").Return(identity, "gho_token", nil)
		f.storage.On("UpsertUser", mock.Anything, identity, RoleAdmin).Return(user, nil)
		f.metrics.On("SignIn", ProviderGitHub, "success").Once()

		token, session, err := f.svc.SignIn(context.Background(), ProviderGitHub, "code-1")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, session.Role)
		assert.Equal(t, user.ID.Hex(), session.UserID)

		validated, err := f.sessions.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, validated.Role)
		assert.Equal(t, "gho_token", validated.AccessToken)

		f.adapter.AssertExpectations(t)
		f.storage.AssertExpectations(t)
		f.metrics.AssertExpectations(t)
	})

	t.Run("exchange failure", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		f.adapter.On("Exchange", mock.Anything, "bad").
			Return(Identity{}, "", errors.Join(ErrIdentityExchange, errors.New("bad_verification_code")))
		f.metrics.On("SignIn", ProviderGitHub, "exchange_failed").Once()

		_, _, err := f.svc.SignIn(context.Background(), ProviderGitHub, "bad")
		assert.ErrorIs(t, err, ErrIdentityExchange)
		f.storage.AssertNotCalled(t, "UpsertUser", mock.Anything, mock.Anything, mock.Anything)
		f.metrics.AssertExpectations(t)
	})

	t.Run("missing email", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		f.adapter.On("Exchange", mock.Anything, "code").
			Return(Identity{Provider: ProviderGitHub, ProviderID: "1"}, "tok", nil)
		f.metrics.On("SignIn", ProviderGitHub, "missing_email").Once()

		_, _, err := f.svc.SignIn(context.Background(), ProviderGitHub, "code")
		assert.ErrorIs(t, err, ErrMissingEmail)
		f.metrics.AssertExpectations(t)
	})

	t.Run("unverified email", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, ownerAllowList)
		f.adapter.On("Exchange", mock.Anything, "code").
			Return(Identity{Provider: ProviderGitHub, ProviderID: "1", Email: "x@y.com"}, "tok", nil)
		f.metrics.On("SignIn", ProviderGitHub, "unverified_email").Once()

		_, _, err := f.svc.SignIn(context.Background(), ProviderGitHub, "code")
		assert.ErrorIs(t, err, ErrUnverifiedEmail)
		f.storage.AssertNotCalled(t, "UpsertUser", mock.Anything, mock.Anything, mock.Anything)
		f.metrics.AssertExpectations(t)
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		f.adapter.On("Exchange", mock.Anything, "code").
			Return(Identity{Provider: ProviderGitHub, ProviderID: "1", Email: "a@b.io", EmailVerified: true}, "tok", nil)
		f.storage.On("UpsertUser", mock.Anything, mock.Anything, RoleUser).Return(nil, errors.New("timeout"))
		f.metrics.On("SignIn", ProviderGitHub, "storage_failed").Once()

		_, _, err := f.svc.SignIn(context.Background(), ProviderGitHub, "code")
		require.Error(t, err)
		f.metrics.AssertExpectations(t)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		_, _, err := f.svc.SignIn(context.Background(), "gitlab", "code")
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})
}

func TestService_PromoteSelf(t *testing.T) {
	t.Parallel()

	session := Session{UserID: bson.NewObjectID().Hex(), Email: "reader@example.com", Role: RoleUser}
	dev := environment.WithContext(context.Background(), environment.Development)

	t.Run("development", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		f.storage.On("SetRole", mock.Anything, "reader@example.com", RoleAdmin).Return(nil).Once()

		require.NoError(t, f.svc.PromoteSelf(dev, session))
		f.storage.AssertExpectations(t)
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		prod := environment.WithContext(context.Background(), environment.Production)

		err := f.svc.PromoteSelf(prod, session)
		assert.ErrorIs(t, err, ErrSelfPromotionDisabled)
		f.storage.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user missing", func(t *testing.T) {
		t.Parallel()

		f := newServiceFixture(t, nil)
		f.storage.On("SetRole", mock.Anything, "reader@example.com", RoleAdmin).Return(ErrUserNotFound)

		assert.ErrorIs(t, f.svc.PromoteSelf(dev, session), ErrUserNotFound)
	})
}
