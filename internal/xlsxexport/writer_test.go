package xlsxexport_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"awaaz/internal/csvexport"
	"awaaz/internal/domain"
	"awaaz/internal/schema"
	"awaaz/internal/xlsxexport"
)

func TestWrite_RoundTrip(t *testing.T) {
	record, err := json.Marshal(domain.FormRecord{
		schema.FieldApplicantName: "Sita Devi",
		schema.FieldPhoneNumber:   "9876543210",
	})
	require.NoError(t, err)

	session := domain.FormSession{
		ID:           uuid.New(),
		Record:       record,
		Status:       domain.SessionCompleted,
		PDFGenerated: true,
		CreatedAt:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, []domain.FormSession{session}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, csvexport.Columns, rows[0])
	assert.Equal(t, session.ID.String(), rows[1][0])
	assert.Equal(t, "completed", rows[1][1])
	assert.Equal(t, "Yes", rows[1][2])
	assert.Equal(t, "Sita Devi", rows[1][3])
}

func TestWrite_NoSessions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvexport.Columns, rows[0])
}
