package extractor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"awaaz/internal/extractor"
)

func TestNewRateLimitError_Defaults(t *testing.T) {
	err := extractor.NewRateLimitError("gemini", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Equal(t, "gemini", err.Provider)
}

func TestNewRateLimitError_ExplicitRetryAfter(t *testing.T) {
	err := extractor.NewRateLimitError("gemini", errors.New("429"), 120)
	assert.Equal(t, 120*time.Second, err.RetryAfter)
}

func TestRateLimitError_Unwrap(t *testing.T) {
	inner := errors.New("429 too many requests")
	err := extractor.NewRateLimitError("gemini", inner, 30)
	assert.ErrorIs(t, err, inner)

	var rlErr *extractor.RateLimitError
	assert.ErrorAs(t, err, &rlErr)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, extractor.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, extractor.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
