package model

// EfficiencyMetrics expresses how much the compiler condensed the raw intent,
// measured over the rendered output (contract or clarification set), never
// over telemetry.
type EfficiencyMetrics struct {
	EfficiencyPercentage float64 `json:"efficiency_percentage"` // 0-100, 2 decimals
	UserChars            int     `json:"user_chars"`
	ContractChars        int     `json:"ctc_chars"`
	CompressionRatio     float64 `json:"compression_ratio"` // ctc_chars / max(1, user_chars), 2 decimals
}
