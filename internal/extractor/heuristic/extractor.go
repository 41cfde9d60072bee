// Package heuristic extracts form field values from free-form Hindi/Hinglish
// utterances using layered pattern and context rules. It needs no network
// access and never fails, which makes it the extractor of last resort in the
// fallback chain.
package heuristic

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"awaaz/internal/amount"
	"awaaz/internal/domain"
	"awaaz/internal/schema"
)

// Extractor implements port.SlotExtractor with deterministic rules.
type Extractor struct {
	now func() time.Time
}

// New creates a heuristic extractor using the wall clock for age arithmetic.
func New() *Extractor {
	return &Extractor{now: time.Now}
}

// NewWithClock creates an extractor with an injected clock.
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// turn holds the per-call working state for one utterance.
//
// matched is shared across all field rules: once any rule has pulled a value
// out of the utterance, the focus-field fallbacks stop firing. A bare answer
// fills the field being asked for, but an utterance that already matched
// somewhere is not also dumped into the focused field.
type turn struct {
	raw     string
	lower   string
	digits  string
	focus   string
	matched bool
	record  domain.FormRecord
	values  map[string]string
	year    int
}

func (t *turn) filled(field string) bool {
	return t.record.Filled(field)
}

func (t *turn) set(field, value string) {
	t.record[field] = value
	t.values[field] = value
	t.matched = true
}

// Extract applies the per-field rules in schema order. Only fields empty in
// the supplied record are attempted; one utterance may fill several fields.
func (e *Extractor) Extract(_ context.Context, utterance string, record domain.FormRecord) (*domain.ExtractionResult, error) {
	t := &turn{
		raw:    utterance,
		lower:  strings.ToLower(strings.TrimSpace(utterance)),
		digits: digitsOnly(utterance),
		focus:  focusField(record),
		record: record.Clone(),
		values: map[string]string{},
		year:   e.now().Year(),
	}

	t.applicantName()
	t.fatherOrSpouseName()
	t.gender()
	t.dateOfBirth()
	t.annualIncome()
	t.loanAmount()
	t.loanPurpose()
	t.address()
	t.idNumber()
	t.phoneNumber()

	return &domain.ExtractionResult{Values: t.values}, nil
}

// focusField is the first field in schema order that is empty in the input
// record, i.e. the field the dialogue is currently asking for.
func focusField(record domain.FormRecord) string {
	for _, id := range schema.IDs() {
		if !record.Filled(id) {
			return id
		}
	}
	return ""
}

var (
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:mera|meri|apna|hamara)\s+(?:naam|name)\s+(.+?)\s+(?:hai|he|h)\b`),
		regexp.MustCompile(`(?i)(?:naam|name)\s+(?:hai|he|h|:)?\s*(.+)`),
		regexp.MustCompile(`(?i)(?:i am|i'm|main hoon|main)\s+(.+)`),
		regexp.MustCompile(`(?i)(?:my name is)\s+(.+)`),
	}
	fatherPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:pita|father|papa|pitaji|baap)\s*(?:ka|ke|ki)?\s*(?:naam|name)?\s*(?:hai|he|h|:)?\s*(.+)`),
		regexp.MustCompile(`(?i)(?:pati|husband|spouse)\s*(?:ka|ke|ki)?\s*(?:naam|name)?\s*(?:hai|he|h|:)?\s*(.+)`),
	}
	trailingPunctRe = regexp.MustCompile(`[.!?,]+$`)
	trailingHaiRe   = regexp.MustCompile(`(?i)\s+(hai|he|h)$`)
	allDigitsRe     = regexp.MustCompile(`^\d+$`)
	digitRunRe      = regexp.MustCompile(`\d+`)
)

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	s = trailingPunctRe.ReplaceAllString(s, "")
	return trailingHaiRe.ReplaceAllString(s, "")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func (t *turn) applicantName() {
	if t.filled(schema.FieldApplicantName) {
		return
	}
	for _, pat := range namePatterns {
		m := pat.FindStringSubmatch(t.raw)
		if m != nil && len(strings.TrimSpace(m[1])) > 1 {
			t.set(schema.FieldApplicantName, cleanName(m[1]))
			return
		}
	}
	if !t.matched && t.focus == schema.FieldApplicantName {
		clean := trailingPunctRe.ReplaceAllString(strings.TrimSpace(t.raw), "")
		if len(clean) > 1 && !allDigitsRe.MatchString(clean) {
			t.set(schema.FieldApplicantName, clean)
		}
	}
}

func (t *turn) fatherOrSpouseName() {
	if t.filled(schema.FieldFatherOrSpouseName) {
		return
	}
	for _, pat := range fatherPatterns {
		m := pat.FindStringSubmatch(t.raw)
		if m != nil && len(strings.TrimSpace(m[1])) > 1 {
			t.set(schema.FieldFatherOrSpouseName, cleanName(m[1]))
			return
		}
	}
	if !t.matched && t.focus == schema.FieldFatherOrSpouseName {
		clean := cleanName(t.raw)
		if len(clean) > 1 && !allDigitsRe.MatchString(clean) {
			t.set(schema.FieldFatherOrSpouseName, clean)
		}
	}
}

var (
	femaleRe      = regexp.MustCompile(`(?i)\b(mahila|female|woman|aurat|stri|lady|ladki)\b`)
	maleRe        = regexp.MustCompile(`(?i)\b(purush|male|man|aadmi|ladka)\b`)
	femaleLooseRe = regexp.MustCompile(`(?i)f|fem|mahila|aurat|stri|woman|lady`)
	maleLooseRe   = regexp.MustCompile(`(?i)m|mal|purush|aadmi|man`)
)

func (t *turn) gender() {
	if t.filled(schema.FieldGender) {
		return
	}
	switch {
	case femaleRe.MatchString(t.lower):
		t.set(schema.FieldGender, "Female")
		return
	case maleRe.MatchString(t.lower):
		t.set(schema.FieldGender, "Male")
		return
	}
	// Loose prefix test, only when gender is the field being asked for.
	if !t.matched && t.focus == schema.FieldGender {
		if femaleLooseRe.MatchString(t.lower) {
			t.set(schema.FieldGender, "Female")
		} else if maleLooseRe.MatchString(t.lower) {
			t.set(schema.FieldGender, "Male")
		}
	}
}

var (
	dobRe = regexp.MustCompile(`(\d{1,2})[\s/.\-]+(\d{1,2})[\s/.\-]+(\d{2,4})`)
	ageRe = regexp.MustCompile(`(\d+)\s*(?:saal|sal|year|years|age|umar)`)
)

func (t *turn) dateOfBirth() {
	if t.filled(schema.FieldDateOfBirth) {
		return
	}
	if m := dobRe.FindStringSubmatch(t.raw); m != nil {
		t.set(schema.FieldDateOfBirth, fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3]))
	}
	if !t.filled(schema.FieldDateOfBirth) {
		if m := ageRe.FindStringSubmatch(t.lower); m != nil {
			if age, err := strconv.Atoi(m[1]); err == nil && age > 0 && age < 120 {
				t.set(schema.FieldDateOfBirth, fmt.Sprintf("01/01/%d", t.year-age))
			}
		}
	}
	// A bare small number while DOB is being asked is read as an age.
	if !t.matched && t.focus == schema.FieldDateOfBirth && len(t.digits) >= 1 && len(t.digits) <= 3 {
		if age, err := strconv.Atoi(t.digits); err == nil && age > 0 && age < 120 {
			t.set(schema.FieldDateOfBirth, fmt.Sprintf("01/01/%d", t.year-age))
		}
	}
	// Last resort: accept a literal date-like string. Known imprecision kept
	// on purpose: anything with a digit is taken verbatim. The 'taiyaar'
	// check stops the spoken completion message from being re-captured.
	if !t.matched && t.focus == schema.FieldDateOfBirth {
		clean := strings.TrimSpace(t.raw)
		if len(clean) > 3 && strings.ContainsAny(clean, "0123456789") &&
			!strings.Contains(strings.ToLower(clean), "taiyaar") {
			t.set(schema.FieldDateOfBirth, clean)
		}
	}
}

var incomePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*(?:rupay|rupee|rs|inr)?[,\s]*(?:per day|per month|monthly|daily|mahina|din|roz)`),
	regexp.MustCompile(`(?i)(?:income|kamai|kamat|aay|earn|milta|milte|milti|salary|tankhwah).*?(\d+)`),
	regexp.MustCompile(`(?i)(\d+).*?(?:income|kamai|kamat|aay|earn|milta|milte|milti|salary|tankhwah)`),
}

// formatAmount renders a canonical currency string, annotating sub-annual
// amounts with their source periodicity.
func formatAmount(v int64, p amount.Period) string {
	switch p {
	case amount.PeriodDaily:
		return fmt.Sprintf("Rs. %d (Rs. %d/day)", amount.Annualize(v, p), v)
	case amount.PeriodMonthly:
		return fmt.Sprintf("Rs. %d (Rs. %d/month)", amount.Annualize(v, p), v)
	default:
		return fmt.Sprintf("Rs. %d", v)
	}
}

func (t *turn) annualIncome() {
	if t.filled(schema.FieldAnnualIncome) {
		return
	}
	if v, ok := amount.Parse(t.lower); ok {
		t.set(schema.FieldAnnualIncome, formatAmount(v, amount.DetectPeriod(t.lower)))
		return
	}
	for _, pat := range incomePatterns {
		m := pat.FindStringSubmatch(t.lower)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			t.set(schema.FieldAnnualIncome, formatAmount(v, amount.DetectPeriod(t.lower)))
			return
		}
	}
	if !t.matched && t.focus == schema.FieldAnnualIncome {
		if v, ok := amount.Parse(t.lower); ok {
			t.set(schema.FieldAnnualIncome, fmt.Sprintf("Rs. %d", v))
		} else if len(t.digits) >= 2 {
			if v, err := strconv.ParseInt(t.digits, 10, 64); err == nil && v > 0 {
				t.set(schema.FieldAnnualIncome, fmt.Sprintf("Rs. %d", v))
			}
		}
	}
}

var (
	loanContextRe = regexp.MustCompile(`(?i)loan|paisa|chahiye|amount|rashi|dena|dedo|dijiye|udhar`)
	loanPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:loan|paisa|chahiye|amount|rashi|dena|dedo|dijiye|udhar)\s*(?:ke liye|ka)?\s*(?:rs\.?|rupay|rupee)?\s*(\d+)`),
		regexp.MustCompile(`(?i)(\d+)\s*(?:rupay|rupee|rs)?\s*(?:loan|chahiye|dedo|dijiye|udhar|dena)`),
	}
)

func (t *turn) loanAmount() {
	if t.filled(schema.FieldLoanAmount) {
		return
	}
	// Vernacular amounts need a request-style keyword nearby, otherwise an
	// income mention like "2 lakh kamata hoon" would also land here.
	if v, ok := amount.Parse(t.lower); ok && loanContextRe.MatchString(t.lower) {
		t.set(schema.FieldLoanAmount, fmt.Sprintf("Rs. %d", v))
		return
	}
	for _, pat := range loanPatterns {
		m := pat.FindStringSubmatch(t.lower)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			t.set(schema.FieldLoanAmount, fmt.Sprintf("Rs. %d", v))
			return
		}
	}
	if !t.matched && t.focus == schema.FieldLoanAmount {
		if v, ok := amount.Parse(t.lower); ok {
			t.set(schema.FieldLoanAmount, fmt.Sprintf("Rs. %d", v))
		} else if len(t.digits) >= 2 {
			if v, err := strconv.ParseInt(t.digits, 10, 64); err == nil && v > 0 {
				t.set(schema.FieldLoanAmount, fmt.Sprintf("Rs. %d", v))
			}
		}
	}
}

var purposeRules = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)\b(seeds|beej|kheti|farming|agriculture|kisan|crop|fasal)\b`), "Agriculture / Farming"},
	{regexp.MustCompile(`(?i)\b(dukaan|shop|store|inventory|saman|business|vyapar|karobar)\b`), "Business / Shop"},
	{regexp.MustCompile(`(?i)\b(ghar|house|home|construction|repair|makaan|building)\b`), "Home Construction / Repair"},
	{regexp.MustCompile(`(?i)\b(school|padhai|education|study|college|fees|vidyalaya)\b`), "Education"},
	{regexp.MustCompile(`(?i)\b(medical|hospital|doctor|ilaj|dawai|treatment|health)\b`), "Medical / Health"},
	{regexp.MustCompile(`(?i)\b(shaadi|wedding|marriage|vivah)\b`), "Wedding / Marriage"},
}

func (t *turn) loanPurpose() {
	if t.filled(schema.FieldLoanPurpose) {
		return
	}
	for _, rule := range purposeRules {
		if rule.re.MatchString(t.lower) {
			t.set(schema.FieldLoanPurpose, rule.category)
			return
		}
	}
	if !t.matched && t.focus == schema.FieldLoanPurpose {
		clean := strings.TrimSpace(t.raw)
		if len(clean) > 1 && !allDigitsRe.MatchString(clean) {
			t.set(schema.FieldLoanPurpose, clean)
		}
	}
}

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:address|pata|rehte|rahte|gaon|village)\s*(?:hai|he|h|:)?\s*(.+)`),
	regexp.MustCompile(`(?i)(?:main|hum|me)\s+(.+?)\s+(?:mein|me|se)\s+(?:rehte|rahte|hai)`),
}

func (t *turn) address() {
	if t.filled(schema.FieldAddress) {
		return
	}
	for _, pat := range addressPatterns {
		m := pat.FindStringSubmatch(t.raw)
		if m != nil && len(strings.TrimSpace(m[1])) > 3 {
			t.set(schema.FieldAddress, strings.TrimSpace(m[1]))
			return
		}
	}
	if !t.matched && t.focus == schema.FieldAddress {
		clean := strings.TrimSpace(t.raw)
		if len(clean) > 3 {
			t.set(schema.FieldAddress, clean)
		}
	}
}

var (
	aadhaarRe = regexp.MustCompile(`\d{4}[\s-]?\d{4}[\s-]?\d{4}`)
	voterRe   = regexp.MustCompile(`(?i)[a-z]{3}\d{7}`)
)

func (t *turn) idNumber() {
	if t.filled(schema.FieldIDNumber) {
		return
	}
	if m := aadhaarRe.FindString(t.raw); m != "" {
		t.set(schema.FieldIDNumber, m)
	}
	if !t.filled(schema.FieldIDNumber) {
		if m := voterRe.FindString(t.raw); m != "" {
			t.set(schema.FieldIDNumber, strings.ToUpper(m))
		}
	}
	if !t.matched && t.focus == schema.FieldIDNumber {
		clean := strings.TrimSpace(t.raw)
		if len(clean) >= 4 {
			t.set(schema.FieldIDNumber, clean)
		}
	}
}

var phoneGroupRe = regexp.MustCompile(`\d{5}[\s-]\d{5}`)

// findPhone looks for a standalone 10-digit number, or a 5+5 grouped number
// not adjacent to other digits.
func findPhone(text string) string {
	for _, loc := range digitRunRe.FindAllStringIndex(text, -1) {
		if loc[1]-loc[0] == 10 {
			return text[loc[0]:loc[1]]
		}
	}
	for _, loc := range phoneGroupRe.FindAllStringIndex(text, -1) {
		before := loc[0] == 0 || !isDigit(text[loc[0]-1])
		after := loc[1] == len(text) || !isDigit(text[loc[1]])
		if before && after {
			return digitsOnly(text[loc[0]:loc[1]])
		}
	}
	return ""
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (t *turn) phoneNumber() {
	if t.filled(schema.FieldPhoneNumber) {
		return
	}
	if phone := findPhone(t.raw); phone != "" {
		t.set(schema.FieldPhoneNumber, phone)
		return
	}
	if !t.matched && t.focus == schema.FieldPhoneNumber && len(t.digits) >= 7 {
		t.set(schema.FieldPhoneNumber, t.digits)
	}
}
