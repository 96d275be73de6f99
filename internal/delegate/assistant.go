package delegate

import (
	"context"
	"fmt"
	"strings"
)

// FormatVerdict is the structured response of a contract format check.
type FormatVerdict struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
}

const validateSystemPrompt = `You check task contracts for structural problems.
A valid contract has a title line, a Context section with at most 2 bullets,
a Definition of Done section with 3 to 7 checkbox items, an optional
Constraints section with at most 5 bullets, and a Deliverables section with
at most 5 bullets. Report every violation you find.`

// Assistant runs the delegated stages that supplement the rule-based
// pipeline. All calls are best effort; callers treat failures as advisory.
type Assistant struct {
	client *Client
}

func NewAssistant(client *Client) *Assistant {
	return &Assistant{client: client}
}

// ValidateContract asks the fast tier whether a rendered contract is
// structurally sound.
func (a *Assistant) ValidateContract(ctx context.Context, rendered string, complexity int) (FormatVerdict, *Usage, error) {
	var verdict FormatVerdict
	usage, err := a.client.Complete(ctx, StageValidateFormat, Prompt{
		System:     validateSystemPrompt,
		User:       rendered,
		SchemaName: "format_verdict",
		Schema:     GenerateSchema[FormatVerdict](),
		Complexity: complexity,
	}, &verdict)
	if err != nil {
		return FormatVerdict{}, nil, fmt.Errorf("validate contract: %w", err)
	}
	return verdict, usage, nil
}

// Keywords is the structured response of delegated keyword extraction.
type Keywords struct {
	Keywords []string `json:"keywords"`
}

const keywordsSystemPrompt = `Extract the technical keywords from a task
request. Return short lowercase terms, most specific first, at most 10.`

// ExtractKeywords asks the fast tier for the salient terms of a request.
// In assisted mode the compiler tags its compile log lines with them.
func (a *Assistant) ExtractKeywords(ctx context.Context, text string) ([]string, *Usage, error) {
	var out Keywords
	usage, err := a.client.Complete(ctx, StageExtractKeywords, Prompt{
		System:     keywordsSystemPrompt,
		User:       strings.TrimSpace(text),
		SchemaName: "keywords",
		Schema:     GenerateSchema[Keywords](),
	}, &out)
	if err != nil {
		return nil, nil, fmt.Errorf("extract keywords: %w", err)
	}
	return out.Keywords, usage, nil
}
