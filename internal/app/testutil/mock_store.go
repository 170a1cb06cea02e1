package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of object.Store
type MockObjectStore struct {
	mock.Mock
}

func NewMockObjectStore(t *testing.T) *MockObjectStore {
	m := &MockObjectStore{}
	m.Test(t)
	return m
}

func (m *MockObjectStore) PutFile(ctx context.Context, key, path, contentType string) error {
	args := m.Called(ctx, key, path, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
