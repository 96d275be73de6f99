package model

// Option keys for clarification questions. Every question carries exactly
// three options and one of these keys as the default.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
)

// Clarification is a single multiple-choice question rendered for a blocking
// gap. Options always holds exactly the keys A, B and C.
type Clarification struct {
	GapType       GapType           `json:"-"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	DefaultOption string            `json:"default_option"`
}

// AskedQuestion is the wire form of a clarification: options are flattened to
// "KEY: label" strings in key order.
type AskedQuestion struct {
	ID            int64    `json:"question_id,string,omitempty"`
	GapType       GapType  `json:"-"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	DefaultOption string   `json:"default_option"`
}

// ClarificationSet is the clarification block of a compile response.
// ResolvedBy is nil while questions are outstanding. On a contract-bearing
// response it is "user" when any answer was typed, otherwise "default"
// (non-blocking gaps resolve silently by defaults, even on a first pass).
type ClarificationSet struct {
	Asked      []AskedQuestion `json:"asked"`
	ResolvedBy *string         `json:"resolved_by"`
}

// ResolvedByDefault marks a contract generated without asking the user.
func ResolvedByDefault() *string {
	s := "default"
	return &s
}

// ResolvedByUser marks a contract generated from submitted answers.
func ResolvedByUser() *string {
	s := "user"
	return &s
}
