package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormRecord maps every schema field identifier to its string value.
// A field is filled iff its value is non-empty after trimming whitespace.
type FormRecord map[string]string

// Filled reports whether the given field holds a non-empty value.
func (r FormRecord) Filled(fieldID string) bool {
	return strings.TrimSpace(r[fieldID]) != ""
}

// Clone returns an independent copy of the record.
func (r FormRecord) Clone() FormRecord {
	out := make(FormRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ExtractionResult is the output contract shared by every extractor.
// Values holds only fields the extractor is confident about; RawEvidence
// optionally carries the raw provider text the values came from.
type ExtractionResult struct {
	Values      map[string]string
	RawEvidence string
}

// EmptyExtraction returns a result with no values.
func EmptyExtraction() *ExtractionResult {
	return &ExtractionResult{Values: map[string]string{}}
}

// TurnOutcome is returned to the caller after each dialogue turn. It is
// constructed fresh every turn; the engine keeps no state between turns.
type TurnOutcome struct {
	UpdatedRecord      FormRecord        `json:"updatedState"`
	NextPrompt         string            `json:"nextQuestion"`
	FilledFields       []string          `json:"filledFields"`
	MissingFields      []string          `json:"missingFields"`
	ExtractedThisRound map[string]string `json:"extractedThisRound"`
}

// TranscriptEntry is one captured utterance in a session's transcript log.
type TranscriptEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatEntry is one message in a session's chat log.
type ChatEntry struct {
	Role      ChatRole  `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// FormSession is a durable snapshot of one application conversation.
// Record, Transcripts, and ChatLog are stored as jsonb.
type FormSession struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Record       json.RawMessage `db:"record" json:"record"`
	Transcripts  json.RawMessage `db:"transcripts" json:"transcripts"`
	ChatLog      json.RawMessage `db:"chat_log" json:"chat_log"`
	Status       SessionStatus   `db:"status" json:"status"`
	PDFGenerated bool            `db:"pdf_generated" json:"pdf_generated"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// RecordMap decodes the session's stored record. A missing or corrupt
// column decodes to an empty record rather than an error.
func (s *FormSession) RecordMap() FormRecord {
	record := FormRecord{}
	if len(s.Record) > 0 {
		_ = json.Unmarshal(s.Record, &record)
	}
	return record
}
