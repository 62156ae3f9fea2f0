package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"simplimed/internal/domain"
)

// MockUploadRepository is a mock implementation of port.UploadRepository.
type MockUploadRepository struct {
	mock.Mock
}

func (m *MockUploadRepository) Create(ctx context.Context, rec *domain.UploadRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
