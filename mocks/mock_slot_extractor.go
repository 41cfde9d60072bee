package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"awaaz/internal/domain"
)

// MockSlotExtractor is a mock implementation of port.SlotExtractor.
type MockSlotExtractor struct {
	mock.Mock
}

func (m *MockSlotExtractor) Extract(ctx context.Context, utterance string, record domain.FormRecord) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, utterance, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
