package port

import (
	"context"

	"awaaz/internal/domain"
)

// DocumentInput carries a photographed identity document.
type DocumentInput struct {
	ImageBytes  []byte
	ContentType string
}

// DocumentOutput contains the fields read off a document image, the raw
// recognized text, and a confidence tag. Fields holds only known schema
// identifiers with non-empty trimmed values.
type DocumentOutput struct {
	Fields     map[string]string `json:"extractedFields"`
	RawText    string            `json:"rawText"`
	Confidence domain.Confidence `json:"confidence"`
}

// DocumentExtractor abstracts vision-based document field extraction.
type DocumentExtractor interface {
	Extract(ctx context.Context, input DocumentInput) (*DocumentOutput, error)
}
