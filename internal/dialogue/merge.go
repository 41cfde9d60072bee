// Package dialogue holds the state merge and question selection logic. Both
// are pure functions of the record, so a conversation is fully resumable
// from any snapshot: no hidden session state is needed for the next question
// to be correct.
package dialogue

import (
	"strings"

	"awaaz/internal/domain"
	"awaaz/internal/schema"
)

// Apply merges an extraction result into the record and returns a new
// record. Only non-empty trimmed values are written, and fields already
// filled in the record are never overwritten. Extractors skip filled fields
// themselves; enforcing it here as well keeps a misbehaving extractor from
// ever destroying user data.
func Apply(record domain.FormRecord, result *domain.ExtractionResult) domain.FormRecord {
	merged := record.Clone()
	if result == nil {
		return merged
	}
	for field, value := range result.Values {
		if !schema.Known(field) {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" || merged.Filled(field) {
			continue
		}
		merged[field] = value
	}
	return merged
}

// Partition splits the schema's fields into filled and missing sets, both in
// schema order. The two slices are always disjoint and together cover every
// field; they are recomputed from scratch on every call, never cached.
func Partition(record domain.FormRecord) (filled, missing []string) {
	filled = []string{}
	missing = []string{}
	for _, id := range schema.IDs() {
		if record.Filled(id) {
			filled = append(filled, id)
		} else {
			missing = append(missing, id)
		}
	}
	return filled, missing
}
