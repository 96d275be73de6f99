package model

// IntentType classifies what kind of work a raw intent is asking for.
type IntentType string

const (
	IntentSoftwareFeature IntentType = "software_feature"
	IntentBugReport       IntentType = "bug_report"
	IntentBusinessNeed    IntentType = "business_need"
	IntentNonTechnical    IntentType = "non_technical"
	IntentConfiguration   IntentType = "configuration"
	IntentTypeAnalysis    IntentType = "analysis"
)

// Clarity is a coarse measure of how actionable the raw intent text is.
type Clarity string

const (
	ClarityClear      Clarity = "clear"      // can proceed immediately
	ClarityVague      Clarity = "vague"      // needs sharpening
	ClarityIncomplete Clarity = "incomplete" // missing critical info
)

// IntentAnalysis is the output of the lexical analysis stage. It is computed
// purely from the input text and never mutated afterwards.
type IntentAnalysis struct {
	IntentType         IntentType `json:"intent_type"`
	Clarity            Clarity    `json:"clarity"`
	ActionVerb         string     `json:"action_verb,omitempty"`
	TargetObject       string     `json:"target_object,omitempty"`
	HasScope           bool       `json:"has_scope"`
	HasConstraints     bool       `json:"has_constraints"`
	HasSuccessCriteria bool       `json:"has_success_criteria"`
	Complexity         int        `json:"complexity"` // 1-5
	Confidence         float64    `json:"confidence"` // 0.0-1.0
}
