// Package session holds pending clarification rounds between the first
// compile and the resubmission. Entries expire; an expired round means the
// client resubmits from scratch.
package session

import (
	"context"
	"errors"
	"strings"

	"gandalf.app/compiler/internal/model"
)

// ErrNotFound is returned when no pending round exists for an intent id,
// either because it was never stored or because its TTL elapsed.
var ErrNotFound = errors.New("session: pending round not found")

// PendingQuestion records one asked question so a later answer can be mapped
// back to the gap that raised it.
type PendingQuestion struct {
	QuestionID    int64         `json:"question_id,string"`
	GapType       model.GapType `json:"gap_type"`
	Question      string        `json:"question"`
	Options       []string      `json:"options"`
	DefaultOption string        `json:"default_option"`
}

// PendingRound is everything needed to re-run the pipeline once answers
// arrive, without requiring the client to resend the original text.
type PendingRound struct {
	IntentID     int64             `json:"intent_id,string"`
	Text         string            `json:"text"`
	GeneratedFor string            `json:"generated_for"`
	TraceID      string            `json:"trace_id,omitempty"`
	Questions    []PendingQuestion `json:"questions"`
}

// DefaultAnswer returns the label of the question's default option.
func (q PendingQuestion) DefaultAnswer() string {
	return q.labelFor(q.DefaultOption)
}

// ResolveAnswer maps a bare option letter to its label. Any other text is
// treated as a free-form answer and returned unchanged.
func (q PendingQuestion) ResolveAnswer(answer string) string {
	trimmed := strings.TrimSpace(answer)
	if len(trimmed) == 1 {
		if label := q.labelFor(strings.ToUpper(trimmed)); label != "" {
			return label
		}
	}
	return trimmed
}

func (q PendingQuestion) labelFor(letter string) string {
	prefix := letter + ": "
	for _, opt := range q.Options {
		if rest, ok := strings.CutPrefix(opt, prefix); ok {
			return rest
		}
	}
	return ""
}

// Question returns the pending question with the given id, if any.
func (r PendingRound) Question(id int64) (PendingQuestion, bool) {
	for _, q := range r.Questions {
		if q.QuestionID == id {
			return q, true
		}
	}
	return PendingQuestion{}, false
}

// Store persists pending rounds keyed by intent id.
type Store interface {
	Put(ctx context.Context, round PendingRound) error
	Get(ctx context.Context, intentID int64) (PendingRound, error)
	Delete(ctx context.Context, intentID int64) error
}
