package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// RenderService renders the printable application form and archives a copy
// per session in object storage.
type RenderService struct {
	renderer      port.DocumentRenderer
	repo          port.SessionRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewRenderService creates a RenderService. repo and storage may be nil; the
// service then only renders, without archival or status updates.
func NewRenderService(renderer port.DocumentRenderer, repo port.SessionRepository, storage port.ObjectStorage, bucket string, presignExpiry int64) *RenderService {
	return &RenderService{
		renderer:      renderer,
		repo:          repo,
		storage:       storage,
		bucket:        bucket,
		presignExpiry: presignExpiry,
	}
}

func documentKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("sessions/%s/loan-application.pdf", sessionID)
}

// Generate renders the form PDF for the given record. When a session ID is
// supplied the session is marked document_generated and the PDF archived to
// object storage in the background; neither affects the returned bytes.
func (s *RenderService) Generate(ctx context.Context, sessionID uuid.UUID, record domain.FormRecord) ([]byte, error) {
	if record == nil {
		return nil, domain.ErrRecordRequired
	}

	pdf, err := s.renderer.Render(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	if sessionID != uuid.Nil {
		s.archiveAsync(sessionID, pdf)
	}

	return pdf, nil
}

// DocumentURL returns a presigned download link for a session's archived PDF.
func (s *RenderService) DocumentURL(ctx context.Context, sessionID uuid.UUID) (string, error) {
	if s.storage == nil {
		return "", domain.ErrNoDocument
	}
	key := documentKey(sessionID)
	exists, err := s.storage.Exists(ctx, s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("renderService.DocumentURL: %w", err)
	}
	if !exists {
		return "", domain.ErrNoDocument
	}
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("renderService.DocumentURL: %w", err)
	}
	return url, nil
}

func (s *RenderService) archiveAsync(sessionID uuid.UUID, pdf []byte) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if s.repo != nil {
			if err := s.repo.UpdateStatus(ctx, sessionID, domain.SessionDocumentGenerated, true); err != nil {
				log.Printf("renderService.archiveAsync: updating session %s status: %v", sessionID, err)
			}
		}
		if s.storage != nil {
			_, err := s.storage.Upload(ctx, port.UploadInput{
				Bucket:      s.bucket,
				Key:         documentKey(sessionID),
				Body:        bytes.NewReader(pdf),
				ContentType: "application/pdf",
			})
			if err != nil {
				log.Printf("renderService.archiveAsync: uploading document for session %s: %v", sessionID, err)
			}
		}
	}()
}
