// Package service contains the application services tying the extraction
// engine to persistence, storage, and rendering.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"awaaz/internal/dialogue"
	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// systemEchoPhrases are fragments of the assistant's own spoken output. A
// speech loop can capture the TTS playback as if the user said it; any
// utterance containing one of these is dropped before extraction so the
// engine never fills fields from its own voice.
var systemEchoPhrases = []string{
	"loan application form taiyaar",
	"right side mein",
	"download kar sakte",
	strings.ToLower(dialogue.AckPrefix),
	strings.ToLower(dialogue.CompletionAckMessage),
	strings.ToLower(dialogue.CompletionMessage),
	strings.ToLower(dialogue.ApologyPrompt),
}

// TurnService runs one dialogue turn: extract, merge, pick the next question,
// then persist the session snapshot in the background.
type TurnService struct {
	extractor port.SlotExtractor
	repo      port.SessionRepository
	now       func() time.Time
}

// NewTurnService creates a TurnService. repo may be nil, in which case turns
// are stateless and nothing is persisted.
func NewTurnService(extractor port.SlotExtractor, repo port.SessionRepository) *TurnService {
	return &TurnService{
		extractor: extractor,
		repo:      repo,
		now:       time.Now,
	}
}

// ProcessTurn runs the engine over one utterance against the caller-supplied
// record. It never returns an error for extractor failures: the turn fails
// open with the record unchanged and a fixed apology prompt, so the
// conversation always has a next question.
func (s *TurnService) ProcessTurn(ctx context.Context, sessionID uuid.UUID, utterance string, record domain.FormRecord) (*domain.TurnOutcome, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, domain.ErrTranscriptRequired
	}
	if record == nil {
		record = domain.FormRecord{}
	}

	if isSystemEcho(utterance) {
		log.Printf("turnService.ProcessTurn: ignoring system echo")
		filled, missing := dialogue.Partition(record)
		return &domain.TurnOutcome{
			UpdatedRecord:      record.Clone(),
			NextPrompt:         dialogue.NextPrompt(0, missing),
			FilledFields:       filled,
			MissingFields:      missing,
			ExtractedThisRound: map[string]string{},
		}, nil
	}

	result, err := s.extractor.Extract(ctx, utterance, record)
	if err != nil {
		log.Printf("turnService.ProcessTurn: extraction failed: %v", err)
		filled, missing := dialogue.Partition(record)
		return &domain.TurnOutcome{
			UpdatedRecord:      record.Clone(),
			NextPrompt:         dialogue.ApologyPrompt,
			FilledFields:       filled,
			MissingFields:      missing,
			ExtractedThisRound: map[string]string{},
		}, nil
	}

	merged := dialogue.Apply(record, result)
	filled, missing := dialogue.Partition(merged)
	prompt := dialogue.NextPrompt(len(result.Values), missing)

	outcome := &domain.TurnOutcome{
		UpdatedRecord:      merged,
		NextPrompt:         prompt,
		FilledFields:       filled,
		MissingFields:      missing,
		ExtractedThisRound: result.Values,
	}

	if s.repo != nil && sessionID != uuid.Nil {
		s.persistAsync(sessionID, utterance, outcome)
	}

	return outcome, nil
}

// persistAsync writes the session snapshot after the response is computed.
// The request context may already be done by the time the write runs, so a
// fresh context is used; failures are logged, never surfaced to the caller.
// The existing session is loaded first so the turn's transcript and chat
// entries append to the stored logs instead of replacing them.
func (s *TurnService) persistAsync(sessionID uuid.UUID, utterance string, outcome *domain.TurnOutcome) {
	now := s.now()
	status := domain.SessionInProgress
	if len(outcome.MissingFields) == 0 {
		status = domain.SessionCompleted
	}
	record, _ := json.Marshal(outcome.UpdatedRecord)
	prompt := outcome.NextPrompt

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		session := &domain.FormSession{
			ID:        sessionID,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		transcripts := []domain.TranscriptEntry{}
		chatLog := []domain.ChatEntry{}

		existing, err := s.repo.GetByID(ctx, sessionID)
		switch {
		case err == nil:
			_ = json.Unmarshal(existing.Transcripts, &transcripts)
			_ = json.Unmarshal(existing.ChatLog, &chatLog)
			session.CreatedAt = existing.CreatedAt
			session.PDFGenerated = existing.PDFGenerated
		case errors.Is(err, domain.ErrNotFound):
			// first turn of this session
		default:
			// skip the write rather than clobber the stored logs
			log.Printf("turnService.persistAsync: loading session %s: %v", sessionID, err)
			return
		}

		transcripts = append(transcripts, domain.TranscriptEntry{Text: utterance, Timestamp: now})
		chatLog = append(chatLog,
			domain.ChatEntry{Role: domain.RoleUser, Message: utterance, Timestamp: now},
			domain.ChatEntry{Role: domain.RoleAssistant, Message: prompt, Timestamp: now},
		)

		session.Record = record
		session.Transcripts, _ = json.Marshal(transcripts)
		session.ChatLog, _ = json.Marshal(chatLog)

		if err := s.repo.SaveOrUpdate(ctx, session); err != nil {
			log.Printf("turnService.persistAsync: saving session %s: %v", sessionID, err)
		}
	}()
}

func isSystemEcho(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, phrase := range systemEchoPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
