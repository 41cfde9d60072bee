// Package amount parses vernacular Hindi/Hinglish quantity expressions such
// as "2 lakh", "50 hazar", or "1.5 crore" into canonical rupee values.
package amount

import (
	"math"
	"regexp"
	"strconv"
)

// Period tags the periodicity language detected alongside an amount.
type Period int

const (
	PeriodNone Period = iota
	PeriodDaily
	PeriodMonthly
)

// unit-word table: numeric prefix times multiplier, one match per unit word.
var units = []struct {
	re         *regexp.Regexp
	multiplier float64
}{
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:crore|karod|caror)`), 10000000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:lakh|lac|lacs|lakhs)`), 100000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hazar|hazaar|hajar|hajaar|hzar|thousand)`), 1000},
	{regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:sau|hundred)`), 100},
}

var (
	dailyRe   = regexp.MustCompile(`(?i)din|daily|roz|per day`)
	monthlyRe = regexp.MustCompile(`(?i)month|mahina|monthly`)
)

// Parse scans text for unit-word expressions and returns their sum rounded
// to a whole rupee value. Multiple unit words in one utterance are summed,
// so "1 lakh 50 hazar" yields 150000. The second return is false when no
// unit word was found; callers must then fall back to plain-digit rules.
func Parse(text string) (int64, bool) {
	var total float64
	found := false
	for _, u := range units {
		m := u.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		prefix, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		total += prefix * u.multiplier
		found = true
	}
	if !found {
		return 0, false
	}
	return int64(math.Round(total)), true
}

// DetectPeriod reports the periodicity language present in text. Daily
// wording wins over monthly when both appear, matching the dialogue rules.
func DetectPeriod(text string) Period {
	if dailyRe.MatchString(text) {
		return PeriodDaily
	}
	if monthlyRe.MatchString(text) {
		return PeriodMonthly
	}
	return PeriodNone
}

// Annualize converts a periodic amount to its annual figure using the fixed
// multipliers 365 and 12. No leap-year handling.
func Annualize(v int64, p Period) int64 {
	switch p {
	case PeriodDaily:
		return v * 365
	case PeriodMonthly:
		return v * 12
	default:
		return v
	}
}
