package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// SessionService exposes stored application sessions.
type SessionService struct {
	repo port.SessionRepository
}

// NewSessionService creates a SessionService.
func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// Get returns one session by ID.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sessionService.Get: %w", err)
	}
	return session, nil
}

// List returns a page of sessions and the total count. Limit defaults to 20
// and is capped at 100.
func (s *SessionService) List(ctx context.Context, offset, limit int) ([]domain.FormSession, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	sessions, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("sessionService.List: %w", err)
	}
	return sessions, total, nil
}

// Save upserts a session snapshot.
func (s *SessionService) Save(ctx context.Context, session *domain.FormSession) error {
	if err := s.repo.SaveOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("sessionService.Save: %w", err)
	}
	return nil
}
