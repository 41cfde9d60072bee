// Package csvexport converts stored application sessions to CSV for
// back-office reporting.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"awaaz/internal/domain"
	"awaaz/internal/schema"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row: session metadata followed by the form
// fields in schema order.
var Columns = func() []string {
	cols := []string{"Session ID", "Status", "PDF Generated"}
	for _, f := range schema.Fields() {
		cols = append(cols, f.Label)
	}
	return append(cols, "Created At", "Updated At")
}()

// Writer wraps csv.Writer for exporting sessions as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteSessions converts a batch of sessions to CSV rows and writes them.
func (w *Writer) WriteSessions(sessions []domain.FormSession) error {
	for i := range sessions {
		if err := w.csv.Write(SessionToRow(&sessions[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// SessionToRow converts a single session to a row matching Columns. A field
// absent from the stored record exports as an empty cell.
func SessionToRow(session *domain.FormSession) []string {
	row := make([]string, 0, len(Columns))
	row = append(row, session.ID.String(), string(session.Status), formatBool(session.PDFGenerated))

	record := session.RecordMap()
	for _, id := range schema.IDs() {
		row = append(row, record[id])
	}

	return append(row, session.CreatedAt.Format(time.RFC3339), session.UpdatedAt.Format(time.RFC3339))
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if runes := []rune(s); len(runes) > 100 {
		s = string(runes[:100])
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), time.Now().Format("2006-01-02"), ext)
}
