package books

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Search(ctx context.Context, q string, limit int64) ([]Book, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *MockStorage) FindByNames(ctx context.Context, cnName, enName string) ([]Book, error) {
	args := m.Called(ctx, cnName, enName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Book), args.Error(1)
}

func (m *MockStorage) Insert(ctx context.Context, b *Book) (bson.ObjectID, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(bson.ObjectID), args.Error(1)
}

func (m *MockStorage) Update(ctx context.Context, id bson.ObjectID, set bson.M) error {
	args := m.Called(ctx, id, set)
	return args.Error(0)
}

func (m *MockStorage) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecorder is a mock implementation of metrics.Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) SignIn(provider, result string) { m.Called(provider, result) }
func (m *MockRecorder) GuardRejected(reason string)    { m.Called(reason) }
func (m *MockRecorder) CatalogWrite(op, result string) { m.Called(op, result) }
