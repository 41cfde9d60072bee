package amount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"awaaz/internal/amount"
)

func TestParse_SingleUnits(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int64
	}{
		{"two lakh", "mujhe 2 lakh chahiye", 200000},
		{"fifty hazar", "50 hazar ka loan", 50000},
		{"one crore", "1 crore", 10000000},
		{"five sau", "5 sau rupay", 500},
		{"decimal lakh", "1.5 lakh chahiye", 150000},
		{"lac spelling", "2 lac", 200000},
		{"hajaar spelling", "10 hajaar", 10000},
		{"thousand english", "20 thousand", 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := amount.Parse(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_MultipleUnitsAreSummed(t *testing.T) {
	got, ok := amount.Parse("1 lakh 50 hazar chahiye")
	assert.True(t, ok)
	assert.Equal(t, int64(150000), got)
}

func TestParse_NoUnitWord(t *testing.T) {
	_, ok := amount.Parse("mujhe 50000 chahiye")
	assert.False(t, ok)

	_, ok = amount.Parse("mera naam Sita hai")
	assert.False(t, ok)
}

func TestDetectPeriod(t *testing.T) {
	assert.Equal(t, amount.PeriodDaily, amount.DetectPeriod("500 rupay roz"))
	assert.Equal(t, amount.PeriodDaily, amount.DetectPeriod("500 per day"))
	assert.Equal(t, amount.PeriodMonthly, amount.DetectPeriod("5000 mahina"))
	assert.Equal(t, amount.PeriodMonthly, amount.DetectPeriod("earn 5000 monthly"))
	assert.Equal(t, amount.PeriodNone, amount.DetectPeriod("2 lakh saalana"))
}

func TestDetectPeriod_DailyWinsOverMonthly(t *testing.T) {
	assert.Equal(t, amount.PeriodDaily, amount.DetectPeriod("har din kamata hoon, month bhar"))
}

func TestAnnualize(t *testing.T) {
	assert.Equal(t, int64(182500), amount.Annualize(500, amount.PeriodDaily))
	assert.Equal(t, int64(60000), amount.Annualize(5000, amount.PeriodMonthly))
	assert.Equal(t, int64(200000), amount.Annualize(200000, amount.PeriodNone))
}
