package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaaz/internal/dialogue"
	"awaaz/internal/domain"
	"awaaz/internal/extractor/heuristic"
	"awaaz/internal/schema"
	"awaaz/internal/service"
	"awaaz/mocks"
)

func TestProcessTurn_EndToEnd(t *testing.T) {
	svc := service.NewTurnService(heuristic.New(), nil)
	record := domain.FormRecord{schema.FieldApplicantName: "Sita Devi"}

	outcome, err := svc.ProcessTurn(context.Background(), uuid.Nil, "mera pita ka naam Ramesh hai", record)
	require.NoError(t, err)

	assert.Equal(t, "Ramesh", outcome.UpdatedRecord[schema.FieldFatherOrSpouseName])
	assert.Equal(t, "Sita Devi", outcome.UpdatedRecord[schema.FieldApplicantName])
	assert.Equal(t, map[string]string{schema.FieldFatherOrSpouseName: "Ramesh"}, outcome.ExtractedThisRound)

	// Next question is the gender prompt, prefixed with the acknowledgment.
	assert.Equal(t, dialogue.AckPrefix+"Aap mahila hain ya purush?", outcome.NextPrompt)
	assert.Equal(t, []string{schema.FieldApplicantName, schema.FieldFatherOrSpouseName}, outcome.FilledFields)
	assert.Equal(t, schema.FieldGender, outcome.MissingFields[0])

	// The input record is never mutated.
	assert.NotContains(t, record, schema.FieldFatherOrSpouseName)
}

func TestProcessTurn_EmptyTranscript(t *testing.T) {
	svc := service.NewTurnService(heuristic.New(), nil)

	_, err := svc.ProcessTurn(context.Background(), uuid.Nil, "   ", domain.FormRecord{})
	assert.ErrorIs(t, err, domain.ErrTranscriptRequired)
}

func TestProcessTurn_NilRecordTreatedAsEmpty(t *testing.T) {
	svc := service.NewTurnService(heuristic.New(), nil)

	outcome, err := svc.ProcessTurn(context.Background(), uuid.Nil, "Mera naam Sita Devi hai", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sita Devi", outcome.UpdatedRecord[schema.FieldApplicantName])
}

func TestProcessTurn_ExtractorFailureFailsOpen(t *testing.T) {
	ex := new(mocks.MockSlotExtractor)
	ex.On("Extract", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("all extractors failed"))

	svc := service.NewTurnService(ex, nil)
	record := domain.FormRecord{schema.FieldApplicantName: "Sita Devi"}

	outcome, err := svc.ProcessTurn(context.Background(), uuid.Nil, "kuch bhi", record)
	require.NoError(t, err)

	assert.Equal(t, record, outcome.UpdatedRecord)
	assert.Equal(t, dialogue.ApologyPrompt, outcome.NextPrompt)
	assert.Empty(t, outcome.ExtractedThisRound)
	assert.Equal(t, schema.FieldFatherOrSpouseName, outcome.MissingFields[0])
}

func TestProcessTurn_SystemEchoIsIgnored(t *testing.T) {
	ex := new(mocks.MockSlotExtractor)

	svc := service.NewTurnService(ex, nil)
	record := domain.FormRecord{schema.FieldApplicantName: "Sita Devi"}

	outcome, err := svc.ProcessTurn(context.Background(), uuid.Nil,
		"Aapka loan application form taiyaar ho gaya hai! Aap ise right side mein dekh sakte hain.", record)
	require.NoError(t, err)

	assert.Equal(t, record, outcome.UpdatedRecord)
	assert.Empty(t, outcome.ExtractedThisRound)
	assert.Equal(t, "Aapke pita ya pati ka naam kya hai?", outcome.NextPrompt)
	ex.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessTurn_PersistsSessionInBackground(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	saved := make(chan *domain.FormSession, 1)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("SaveOrUpdate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved <- args.Get(1).(*domain.FormSession)
		}).
		Return(nil)

	svc := service.NewTurnService(heuristic.New(), repo)
	sessionID := uuid.New()

	_, err := svc.ProcessTurn(context.Background(), sessionID, "Mera naam Sita Devi hai", domain.FormRecord{})
	require.NoError(t, err)

	select {
	case session := <-saved:
		assert.Equal(t, sessionID, session.ID)
		assert.Equal(t, domain.SessionInProgress, session.Status)
		assert.Equal(t, "Sita Devi", session.RecordMap()[schema.FieldApplicantName])
	case <-time.After(2 * time.Second):
		t.Fatal("session was not persisted")
	}
}

func TestProcessTurn_TranscriptsAccumulateAcrossTurns(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	saved := make(chan *domain.FormSession, 1)
	repo.On("SaveOrUpdate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved <- args.Get(1).(*domain.FormSession)
		}).
		Return(nil)

	svc := service.NewTurnService(heuristic.New(), repo)
	sessionID := uuid.New()

	repo.On("GetByID", mock.Anything, sessionID).Return(nil, domain.ErrNotFound).Once()
	_, err := svc.ProcessTurn(context.Background(), sessionID, "Mera naam Sita Devi hai", domain.FormRecord{})
	require.NoError(t, err)

	var first *domain.FormSession
	select {
	case first = <-saved:
	case <-time.After(2 * time.Second):
		t.Fatal("first turn was not persisted")
	}

	repo.On("GetByID", mock.Anything, sessionID).Return(first, nil).Once()
	_, err = svc.ProcessTurn(context.Background(), sessionID, "mera pita ka naam Ramesh hai", first.RecordMap())
	require.NoError(t, err)

	select {
	case second := <-saved:
		var transcripts []domain.TranscriptEntry
		require.NoError(t, json.Unmarshal(second.Transcripts, &transcripts))
		require.Len(t, transcripts, 2)
		assert.Equal(t, "Mera naam Sita Devi hai", transcripts[0].Text)
		assert.Equal(t, "mera pita ka naam Ramesh hai", transcripts[1].Text)

		var chatLog []domain.ChatEntry
		require.NoError(t, json.Unmarshal(second.ChatLog, &chatLog))
		require.Len(t, chatLog, 4)
		assert.Equal(t, domain.RoleUser, chatLog[2].Role)
		assert.Equal(t, domain.RoleAssistant, chatLog[3].Role)

		assert.Equal(t, first.CreatedAt, second.CreatedAt)
	case <-time.After(2 * time.Second):
		t.Fatal("second turn was not persisted")
	}
}

func TestProcessTurn_PersistenceFailureDoesNotAffectOutcome(t *testing.T) {
	repo := new(mocks.MockSessionRepo)
	called := make(chan struct{}, 1)
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	repo.On("SaveOrUpdate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { called <- struct{}{} }).
		Return(errors.New("db down"))

	svc := service.NewTurnService(heuristic.New(), repo)

	outcome, err := svc.ProcessTurn(context.Background(), uuid.New(), "Mera naam Sita Devi hai", domain.FormRecord{})
	require.NoError(t, err)
	assert.Equal(t, "Sita Devi", outcome.UpdatedRecord[schema.FieldApplicantName])

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("persistence was not attempted")
	}
}

func TestProcessTurn_CompletionMessage(t *testing.T) {
	svc := service.NewTurnService(heuristic.New(), nil)

	record := domain.FormRecord{}
	for _, id := range schema.IDs() {
		record[id] = "x"
	}
	record[schema.FieldPhoneNumber] = ""

	outcome, err := svc.ProcessTurn(context.Background(), uuid.Nil, "9876543210", record)
	require.NoError(t, err)

	assert.Empty(t, outcome.MissingFields)
	assert.Equal(t, dialogue.CompletionAckMessage, outcome.NextPrompt)
}
