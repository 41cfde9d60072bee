package port

import (
	"context"

	"awaaz/internal/domain"
)

// SlotExtractor pulls field values out of a free-form utterance given the
// current record. Implementations must only propose values for fields that
// are empty in the supplied record, so repeated calls with the same
// utterance are idempotent. The calling flow cannot tell which
// implementation produced a value.
type SlotExtractor interface {
	Extract(ctx context.Context, utterance string, record domain.FormRecord) (*domain.ExtractionResult, error)
}
