package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// SessionRepo implements port.SessionRepository over the form_sessions table.
type SessionRepo struct {
	db *sqlx.DB
}

// NewSessionRepo creates a SessionRepo.
func NewSessionRepo(db *sqlx.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

var _ port.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) SaveOrUpdate(ctx context.Context, session *domain.FormSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO form_sessions (id, record, transcripts, chat_log, status, pdf_generated, created_at, updated_at)
		VALUES (:id, :record, :transcripts, :chat_log, :status, :pdf_generated, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE SET
			record = EXCLUDED.record,
			transcripts = EXCLUDED.transcripts,
			chat_log = EXCLUDED.chat_log,
			status = EXCLUDED.status,
			pdf_generated = EXCLUDED.pdf_generated,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("sessionRepo.SaveOrUpdate: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FormSession, error) {
	var session domain.FormSession
	query := `
		SELECT id, record, transcripts, chat_log, status, pdf_generated, created_at, updated_at
		FROM form_sessions
		WHERE id = $1`

	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("sessionRepo.GetByID: %w", err)
	}
	return &session, nil
}

func (r *SessionRepo) List(ctx context.Context, offset, limit int) ([]domain.FormSession, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM form_sessions`); err != nil {
		return nil, 0, fmt.Errorf("sessionRepo.List: counting: %w", err)
	}

	sessions := []domain.FormSession{}
	query := `
		SELECT id, record, transcripts, chat_log, status, pdf_generated, created_at, updated_at
		FROM form_sessions
		ORDER BY updated_at DESC
		OFFSET $1 LIMIT $2`

	if err := r.db.SelectContext(ctx, &sessions, query, offset, limit); err != nil {
		return nil, 0, fmt.Errorf("sessionRepo.List: %w", err)
	}
	return sessions, total, nil
}

func (r *SessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus, pdfGenerated bool) error {
	query := `
		UPDATE form_sessions
		SET status = $2, pdf_generated = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, pdfGenerated, time.Now())
	if err != nil {
		return fmt.Errorf("sessionRepo.UpdateStatus: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
