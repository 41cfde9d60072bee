package service

import (
	"context"
	"fmt"
	"log"

	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// MaxImageBytes caps uploaded document photos at 10 MB.
const MaxImageBytes = 10 << 20

// DocumentService reads field values off a photographed identity document.
type DocumentService struct {
	extractor port.DocumentExtractor
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(extractor port.DocumentExtractor) *DocumentService {
	return &DocumentService{extractor: extractor}
}

// ExtractFields validates the image and delegates to the vision extractor.
// Invalid input is the caller's fault and errors; a vision backend failure
// fails open with an empty low-confidence result so the conversation can
// continue by voice.
func (s *DocumentService) ExtractFields(ctx context.Context, input port.DocumentInput) (*port.DocumentOutput, error) {
	if len(input.ImageBytes) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrUnsupportedImageType)
	}
	if len(input.ImageBytes) > MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	if !domain.AllowedImageTypes[input.ContentType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, input.ContentType)
	}

	out, err := s.extractor.Extract(ctx, input)
	if err != nil {
		log.Printf("documentService.ExtractFields: vision extraction failed: %v", err)
		return &port.DocumentOutput{
			Fields:     map[string]string{},
			Confidence: domain.ConfidenceLow,
		}, nil
	}
	return out, nil
}
