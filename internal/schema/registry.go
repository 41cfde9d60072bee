// Package schema is the canonical registry of loan-application form fields.
// The declaration order of the fields defines question priority: the dialogue
// always asks for the first missing field in this order.
package schema

// ValueKind is the semantic type tag of a field.
type ValueKind string

const (
	KindFreeText ValueKind = "free_text"
	KindCurrency ValueKind = "currency"
	KindDate     ValueKind = "date"
	KindEnum     ValueKind = "enum"
)

// Field identifiers. These are the only keys a FormRecord may contain.
const (
	FieldApplicantName      = "applicant_name"
	FieldFatherOrSpouseName = "father_or_spouse_name"
	FieldGender             = "gender"
	FieldDateOfBirth        = "date_of_birth"
	FieldAnnualIncome       = "annual_income"
	FieldLoanAmount         = "loan_amount"
	FieldLoanPurpose        = "loan_purpose"
	FieldAddress            = "address"
	FieldIDNumber           = "id_number"
	FieldPhoneNumber        = "phone_number"
)

// Field describes one form field: its identifier, the English/Hindi label
// printed on the rendered form, the spoken prompt asking for it, and its kind.
type Field struct {
	ID     string
	Label  string
	Prompt string
	Kind   ValueKind
}

var fields = []Field{
	{FieldApplicantName, "Applicant Name / Aavedan karta ka naam", "Aapka poora naam kya hai?", KindFreeText},
	{FieldFatherOrSpouseName, "Father/Spouse Name / Pita ya pati ka naam", "Aapke pita ya pati ka naam kya hai?", KindFreeText},
	{FieldGender, "Gender / Ling", "Aap mahila hain ya purush?", KindEnum},
	{FieldDateOfBirth, "Date of Birth / Janam tithi", "Aapki janam tithi kya hai? Ya apni umar bataiye.", KindDate},
	{FieldAnnualIncome, "Annual Income / Saalana aay", "Aap ek saal mein kitna kamate hain? Ya ek din mein kitna kamate hain?", KindCurrency},
	{FieldLoanAmount, "Loan Amount Requested / Kitna paisa chahiye", "Aapko kitna paisa chahiye loan ke roop mein?", KindCurrency},
	{FieldLoanPurpose, "Purpose of Loan / Loan ka karan", "Aapko yeh paisa kis kaam ke liye chahiye?", KindFreeText},
	{FieldAddress, "Address / Pata", "Aapka ghar ka pata kya hai? Gaon, tehsil, zila bataiye.", KindFreeText},
	{FieldIDNumber, "ID Proof Number / Aadhaar ya Voter ID number", "Aapka Aadhaar ya Voter ID number kya hai? Ya aap iska photo bhej sakte hain.", KindFreeText},
	{FieldPhoneNumber, "Phone Number / Phone number", "Aapka phone number batayiye.", KindFreeText},
}

var byID = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return m
}()

// Fields returns the ordered field list.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// IDs returns the field identifiers in question order.
func IDs() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

// Known reports whether id is a schema field identifier.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// PromptFor returns the spoken prompt for a field, or "" for an unknown id.
func PromptFor(id string) string {
	return byID[id].Prompt
}

// LabelFor returns the printed label for a field, or "" for an unknown id.
func LabelFor(id string) string {
	return byID[id].Label
}
