package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, so pipeline context (intent_id, stage, etc.)
// is included in every log statement without threading it by hand.
type LogFields struct {
	IntentID     *int64  // Intent ID assigned on ingestion
	QuestionID   *int64  // Clarification question ID being answered
	IntentType   *string // Classified intent type (e.g. "bug_report")
	Stage        *string // Pipeline stage (e.g. "gap_detection")
	GeneratedFor *string // Executor the contract is generated for
	Component    string  // Component name (e.g. "compiler.http.intent")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.IntentID != nil {
		result.IntentID = new.IntentID
	}
	if new.QuestionID != nil {
		result.QuestionID = new.QuestionID
	}
	if new.IntentType != nil {
		result.IntentType = new.IntentType
	}
	if new.Stage != nil {
		result.Stage = new.Stage
	}
	if new.GeneratedFor != nil {
		result.GeneratedFor = new.GeneratedFor
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{IntentID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
// Useful for logging potentially long strings like raw request text.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
