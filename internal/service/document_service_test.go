package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"awaaz/internal/domain"
	"awaaz/internal/port"
	"awaaz/internal/schema"
	"awaaz/internal/service"
	"awaaz/mocks"
)

func TestExtractFields_Success(t *testing.T) {
	ex := new(mocks.MockDocumentExtractor)
	ex.On("Extract", mock.Anything, mock.Anything).Return(&port.DocumentOutput{
		Fields:     map[string]string{schema.FieldApplicantName: "Sita Devi"},
		RawText:    "Government of India",
		Confidence: domain.ConfidenceHigh,
	}, nil)

	svc := service.NewDocumentService(ex)

	out, err := svc.ExtractFields(context.Background(), port.DocumentInput{
		ImageBytes:  []byte("jpeg-bytes"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sita Devi", out.Fields[schema.FieldApplicantName])
	assert.Equal(t, domain.ConfidenceHigh, out.Confidence)
}

func TestExtractFields_RejectsUnsupportedType(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentExtractor))

	_, err := svc.ExtractFields(context.Background(), port.DocumentInput{
		ImageBytes:  []byte("gif-bytes"),
		ContentType: "image/gif",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
}

func TestExtractFields_RejectsEmptyImage(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentExtractor))

	_, err := svc.ExtractFields(context.Background(), port.DocumentInput{
		ImageBytes:  nil,
		ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
}

func TestExtractFields_RejectsOversizedImage(t *testing.T) {
	svc := service.NewDocumentService(new(mocks.MockDocumentExtractor))

	_, err := svc.ExtractFields(context.Background(), port.DocumentInput{
		ImageBytes:  bytes.Repeat([]byte("a"), service.MaxImageBytes+1),
		ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestExtractFields_VisionFailureFailsOpen(t *testing.T) {
	ex := new(mocks.MockDocumentExtractor)
	ex.On("Extract", mock.Anything, mock.Anything).Return(nil, errors.New("vision down"))

	svc := service.NewDocumentService(ex)

	out, err := svc.ExtractFields(context.Background(), port.DocumentInput{
		ImageBytes:  []byte("jpeg-bytes"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Fields)
	assert.Equal(t, domain.ConfidenceLow, out.Confidence)
}
