package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaaz/internal/domain"
	"awaaz/internal/port"
	"awaaz/internal/schema"
	"awaaz/internal/service"
	"awaaz/mocks"
)

func TestGenerate_ReturnsRenderedBytes(t *testing.T) {
	renderer := new(mocks.MockRenderer)
	renderer.On("Render", mock.Anything).Return([]byte("%PDF-1.4 fake"), nil)

	svc := service.NewRenderService(renderer, nil, nil, "", 0)

	pdf, err := svc.Generate(context.Background(), uuid.Nil, domain.FormRecord{
		schema.FieldApplicantName: "Sita Devi",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), pdf)
}

func TestGenerate_NilRecord(t *testing.T) {
	svc := service.NewRenderService(new(mocks.MockRenderer), nil, nil, "", 0)

	_, err := svc.Generate(context.Background(), uuid.Nil, nil)
	assert.ErrorIs(t, err, domain.ErrRecordRequired)
}

func TestGenerate_RenderFailure(t *testing.T) {
	renderer := new(mocks.MockRenderer)
	renderer.On("Render", mock.Anything).Return(nil, errors.New("layout error"))

	svc := service.NewRenderService(renderer, nil, nil, "", 0)

	_, err := svc.Generate(context.Background(), uuid.Nil, domain.FormRecord{})
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestGenerate_ArchivesPerSession(t *testing.T) {
	renderer := new(mocks.MockRenderer)
	renderer.On("Render", mock.Anything).Return([]byte("%PDF-1.4 fake"), nil)

	repo := new(mocks.MockSessionRepo)
	statusUpdated := make(chan struct{}, 1)
	repo.On("UpdateStatus", mock.Anything, mock.Anything, domain.SessionDocumentGenerated, true).
		Run(func(mock.Arguments) { statusUpdated <- struct{}{} }).
		Return(nil)

	storage := new(mocks.MockObjectStorage)
	uploaded := make(chan port.UploadInput, 1)
	storage.On("Upload", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded <- args.Get(1).(port.UploadInput)
		}).
		Return(&port.UploadOutput{Location: "s3://bucket/key"}, nil)

	svc := service.NewRenderService(renderer, repo, storage, "awaaz-documents", 3600)
	sessionID := uuid.New()

	_, err := svc.Generate(context.Background(), sessionID, domain.FormRecord{})
	require.NoError(t, err)

	select {
	case <-statusUpdated:
	case <-time.After(2 * time.Second):
		t.Fatal("session status was not updated")
	}

	select {
	case input := <-uploaded:
		assert.Equal(t, "awaaz-documents", input.Bucket)
		assert.Equal(t, fmt.Sprintf("sessions/%s/loan-application.pdf", sessionID), input.Key)
		assert.Equal(t, "application/pdf", input.ContentType)
	case <-time.After(2 * time.Second):
		t.Fatal("document was not uploaded")
	}
}

func TestDocumentURL_Presigns(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	sessionID := uuid.New()
	key := fmt.Sprintf("sessions/%s/loan-application.pdf", sessionID)

	storage.On("Exists", mock.Anything, "awaaz-documents", key).Return(true, nil)
	storage.On("GetPresignedURL", mock.Anything, "awaaz-documents", key, int64(3600)).
		Return("https://example.com/signed", nil)

	svc := service.NewRenderService(new(mocks.MockRenderer), nil, storage, "awaaz-documents", 3600)

	url, err := svc.DocumentURL(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/signed", url)
}

func TestDocumentURL_NoDocument(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Exists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	svc := service.NewRenderService(new(mocks.MockRenderer), nil, storage, "awaaz-documents", 3600)

	_, err := svc.DocumentURL(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNoDocument)
}
