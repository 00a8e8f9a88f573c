package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUserStorage is a mock implementation of UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) UpsertUser(ctx context.Context, identity Identity, role Role) (*User, error) {
	args := m.Called(ctx, identity, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStorage) SetRole(ctx context.Context, email string, role Role) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

// MockProviderAdapter is a mock implementation of ProviderAdapter.
type MockProviderAdapter struct {
	mock.Mock
}

func (m *MockProviderAdapter) ProviderID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProviderAdapter) AuthURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockProviderAdapter) Exchange(ctx context.Context, code string) (Identity, string, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(Identity), args.String(1), args.Error(2)
}

// MockRecorder is a mock implementation of metrics.Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) SignIn(provider, result string) { m.Called(provider, result) }
func (m *MockRecorder) GuardRejected(reason string)    { m.Called(reason) }
func (m *MockRecorder) CatalogWrite(op, result string) { m.Called(op, result) }

func newMockAdapter(id string) *MockProviderAdapter {
	a := &MockProviderAdapter{}
	a.On("ProviderID").Return(id).Maybe()
	return a
}
