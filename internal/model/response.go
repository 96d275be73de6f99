package model

import "time"

// ExecutorInfo names the downstream executor a contract is compiled for.
type ExecutorInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Telemetry carries observability data alongside a compile response. It is
// never counted by the efficiency calculator.
type Telemetry struct {
	IntentID           int64              `json:"intent_id,string"`
	CreatedAt          time.Time          `json:"created_at"`
	Executor           ExecutorInfo       `json:"executor"`
	ElapsedMs          int64              `json:"elapsed_ms"`
	UserQuestionsCount int                `json:"user_questions_count"`
	ExecutionResult    string             `json:"execution_result"`
	Efficiency         *EfficiencyMetrics `json:"efficiency,omitempty"`
}

// Execution results reported in telemetry.
const (
	ResultPendingClarification = "pending_clarification"
	ResultUnknown              = "unknown"
)

// CompileResponse is one of the two terminal shapes of the pipeline: either a
// contract with an empty, default-resolved clarification set, or a
// clarification request with RequiresClarification set and no contract.
type CompileResponse struct {
	RequiresClarification bool             `json:"requires_clarification,omitempty"`
	Contract              *Contract        `json:"ctc,omitempty"`
	Clarifications        ClarificationSet `json:"clarifications"`
	Telemetry             Telemetry        `json:"telemetry"`
}
