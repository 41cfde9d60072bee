package port

import (
	"context"

	"github.com/google/uuid"

	"awaaz/internal/domain"
)

// SessionRepository stores application session snapshots.
type SessionRepository interface {
	// SaveOrUpdate inserts the session or overwrites an existing snapshot
	// with the same ID. Last write wins; the engine relies on the
	// non-destructive merge, not the store, for turn idempotence.
	SaveOrUpdate(ctx context.Context, session *domain.FormSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FormSession, error)
	List(ctx context.Context, offset, limit int) ([]domain.FormSession, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus, pdfGenerated bool) error
}
