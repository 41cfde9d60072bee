package mocks

import (
	"github.com/stretchr/testify/mock"

	"awaaz/internal/domain"
)

// MockRenderer is a mock implementation of port.DocumentRenderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(record domain.FormRecord) ([]byte, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
