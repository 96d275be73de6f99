package dto

// CompileIntentRequest is the body of POST /api/v1/intent.
type CompileIntentRequest struct {
	Text         string  `json:"text" binding:"required"`
	GeneratedFor *string `json:"generated_for,omitempty"`
}

// ClarifyAnswer carries one answered question. Answer is free text; option
// letters from the asked question are accepted as-is.
type ClarifyAnswer struct {
	QuestionID int64  `json:"question_id,string" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// ClarifyRequest is the body of POST /api/v1/intent/clarify. Questions left
// unanswered resolve to their stated defaults.
type ClarifyRequest struct {
	IntentID int64           `json:"intent_id,string" binding:"required"`
	Answers  []ClarifyAnswer `json:"answers" binding:"required"`
}

// DelegateStatusResponse reports how pipeline stages would be routed across
// model tiers at the given complexity.
type DelegateStatusResponse struct {
	Enabled bool              `json:"enabled"`
	Models  map[string]string `json:"models,omitempty"`
	Plan    map[string]string `json:"plan,omitempty"`
}
