package port

import "awaaz/internal/domain"

// DocumentRenderer turns a (complete or partial) record into a printable
// document. Unfilled fields render as a fixed placeholder string.
type DocumentRenderer interface {
	Render(record domain.FormRecord) ([]byte, error)
}
