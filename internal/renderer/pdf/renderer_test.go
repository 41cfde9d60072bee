package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awaaz/internal/domain"
	"awaaz/internal/renderer/pdf"
	"awaaz/internal/schema"
)

func TestRender_CompleteRecord(t *testing.T) {
	record := domain.FormRecord{
		schema.FieldApplicantName:      "Sita Devi",
		schema.FieldFatherOrSpouseName: "Ramesh",
		schema.FieldGender:             "Female",
		schema.FieldDateOfBirth:        "12/05/1990",
		schema.FieldAnnualIncome:       "Rs. 182500 (Rs. 500/day)",
		schema.FieldLoanAmount:         "Rs. 50000",
		schema.FieldLoanPurpose:        "Agriculture / Farming",
		schema.FieldAddress:            "Gaon Rampur, Tehsil Sadar, Zila Lucknow",
		schema.FieldIDNumber:           "1234 5678 9012",
		schema.FieldPhoneNumber:        "9876543210",
	}

	out, err := pdf.New().Render(record)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_PartialRecordUsesPlaceholders(t *testing.T) {
	out, err := pdf.New().Render(domain.FormRecord{
		schema.FieldApplicantName: "Sita Devi",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_EmptyRecord(t *testing.T) {
	out, err := pdf.New().Render(domain.FormRecord{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
