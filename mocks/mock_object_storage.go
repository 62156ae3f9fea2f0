package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"simplimed/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.ArchiveInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
