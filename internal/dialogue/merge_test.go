package dialogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"awaaz/internal/dialogue"
	"awaaz/internal/domain"
	"awaaz/internal/schema"
)

func TestApply_WritesOnlyEmptyFields(t *testing.T) {
	record := domain.FormRecord{schema.FieldApplicantName: "Sita Devi"}
	result := &domain.ExtractionResult{Values: map[string]string{
		schema.FieldApplicantName: "Gita",
		schema.FieldGender:        "Female",
	}}

	merged := dialogue.Apply(record, result)

	assert.Equal(t, "Sita Devi", merged[schema.FieldApplicantName])
	assert.Equal(t, "Female", merged[schema.FieldGender])
}

func TestApply_DropsEmptyAndUnknownValues(t *testing.T) {
	merged := dialogue.Apply(domain.FormRecord{}, &domain.ExtractionResult{Values: map[string]string{
		schema.FieldAddress: "   ",
		"bank_account":      "1234",
		schema.FieldGender:  "  Male  ",
	}})

	assert.False(t, merged.Filled(schema.FieldAddress))
	assert.NotContains(t, merged, "bank_account")
	assert.Equal(t, "Male", merged[schema.FieldGender])
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	record := domain.FormRecord{}
	dialogue.Apply(record, &domain.ExtractionResult{Values: map[string]string{
		schema.FieldGender: "Female",
	}})

	assert.Empty(t, record)
}

func TestApply_NilResult(t *testing.T) {
	record := domain.FormRecord{schema.FieldApplicantName: "Sita"}
	merged := dialogue.Apply(record, nil)
	assert.Equal(t, record, merged)
}

func TestApply_IsIdempotent(t *testing.T) {
	result := &domain.ExtractionResult{Values: map[string]string{
		schema.FieldApplicantName: "Sita Devi",
	}}

	once := dialogue.Apply(domain.FormRecord{}, result)
	twice := dialogue.Apply(once, result)

	assert.Equal(t, once, twice)
}

func TestPartition_DisjointAndCovering(t *testing.T) {
	record := domain.FormRecord{
		schema.FieldApplicantName: "Sita Devi",
		schema.FieldGender:        "Female",
		schema.FieldLoanAmount:    "",
	}

	filled, missing := dialogue.Partition(record)

	assert.Equal(t, []string{schema.FieldApplicantName, schema.FieldGender}, filled)
	assert.Len(t, filled, len(schema.IDs())-len(missing))
	assert.Equal(t, schema.FieldFatherOrSpouseName, missing[0])
	for _, id := range missing {
		assert.NotContains(t, filled, id)
	}
}

func TestPartition_EmptyRecord(t *testing.T) {
	filled, missing := dialogue.Partition(domain.FormRecord{})
	assert.Empty(t, filled)
	assert.Equal(t, schema.IDs(), missing)
}
