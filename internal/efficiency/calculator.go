// Package efficiency measures how much the compiler condensed the raw
// request: Efficiency % = clamp(100 * (1 - rendered_chars/max(1, user_chars)), 0, 100).
package efficiency

import (
	"math"

	"gandalf.app/compiler/internal/model"
)

// CharacterEfficiency computes the compression percentage between the raw
// intent text and the rendered pipeline output (contract or clarification
// set), clamped to [0, 100].
func CharacterEfficiency(userText, rendered string) float64 {
	userChars := len(userText)
	renderedChars := len(rendered)

	pct := 100 * (1 - float64(renderedChars)/float64(max(1, userChars)))
	return math.Max(0, math.Min(100, pct))
}

// WithMetadata returns the efficiency figure alongside the raw counts, with
// percentages and ratios rounded to two decimals for reporting.
func WithMetadata(userText, rendered string) model.EfficiencyMetrics {
	userChars := len(userText)
	renderedChars := len(rendered)

	return model.EfficiencyMetrics{
		EfficiencyPercentage: round2(CharacterEfficiency(userText, rendered)),
		UserChars:            userChars,
		ContractChars:        renderedChars,
		CompressionRatio:     round2(float64(renderedChars) / float64(max(1, userChars))),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
