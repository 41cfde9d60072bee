package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"awaaz/internal/domain"
)

// MockSessionRepo is a mock implementation of port.SessionRepository.
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) SaveOrUpdate(ctx context.Context, session *domain.FormSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormSession), args.Error(1)
}

func (m *MockSessionRepo) List(ctx context.Context, offset, limit int) ([]domain.FormSession, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.FormSession), args.Int(1), args.Error(2)
}

func (m *MockSessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus, pdfGenerated bool) error {
	args := m.Called(ctx, id, status, pdfGenerated)
	return args.Error(0)
}
