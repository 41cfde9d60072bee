package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"awaaz/internal/domain"
	"awaaz/internal/port"
)

// circuitState tracks rate-limit backoff for a single extractor.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpen(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Fallback tries extractors in order, skipping those with open circuits.
// It implements port.SlotExtractor. The last entry in the chain is normally
// the offline heuristic extractor, which cannot fail, so a turn degrades
// gracefully rather than erroring when a provider is down.
type Fallback struct {
	extractors []port.SlotExtractor
	circuits   []*circuitState
	names      []string
}

// NewFallback creates a Fallback from an ordered list of extractors and their names.
func NewFallback(extractors []port.SlotExtractor, names []string) *Fallback {
	circuits := make([]*circuitState, len(extractors))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &Fallback{
		extractors: extractors,
		circuits:   circuits,
		names:      names,
	}
}

func (f *Fallback) Extract(ctx context.Context, utterance string, record domain.FormRecord) (*domain.ExtractionResult, error) {
	now := time.Now()
	var lastErr error

	for i, ex := range f.extractors {
		if f.circuits[i].isOpen(now) {
			log.Printf("extractor.Fallback: skipping %s (circuit open)", f.names[i])
			continue
		}

		result, err := ex.Extract(ctx, utterance, record)
		if err == nil {
			return result, nil
		}

		log.Printf("extractor.Fallback: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			f.circuits[i].open(now.Add(rlErr.RetryAfter))
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no extractor available")
	}
	return nil, fmt.Errorf("all extractors failed: %w", lastErr)
}
