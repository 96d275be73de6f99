// Package delegate routes pipeline stages to hosted models when the
// rule-based stages are run in assisted mode. The router picks a cost tier
// per stage; the client executes structured-output calls against it.
package delegate

import (
	"log/slog"
)

// Tier is a cost and capability class, mapped to a concrete model id by
// configuration.
type Tier string

const (
	TierFast     Tier = "fast"
	TierBalanced Tier = "balanced"
	TierDeep     Tier = "deep"
)

// Stage identifies a pipeline step that can be delegated.
type Stage string

const (
	StageClassifyIntent    Stage = "classify_intent"
	StageExtractKeywords   Stage = "extract_keywords"
	StageScoreClarity      Stage = "score_clarity"
	StageDetectGaps        Stage = "detect_gaps"
	StageGenerateQuestions Stage = "generate_questions"
	StagePrioritize        Stage = "prioritize_questions"
	StageGenerateContract  Stage = "generate_ctc"
	StageValidateFormat    Stage = "validate_format"
)

// TierConfig bounds a single call against a tier.
type TierConfig struct {
	MaxTokens      int
	Temperature    float64
	TimeoutSeconds int
	CostPer1KIn    float64
	CostPer1KOut   float64
}

var tierConfigs = map[Tier]TierConfig{
	TierFast:     {MaxTokens: 2000, Temperature: 0.3, TimeoutSeconds: 10, CostPer1KIn: 0.00025, CostPer1KOut: 0.00125},
	TierBalanced: {MaxTokens: 4000, Temperature: 0.5, TimeoutSeconds: 30, CostPer1KIn: 0.003, CostPer1KOut: 0.015},
	TierDeep:     {MaxTokens: 8000, Temperature: 0.7, TimeoutSeconds: 60, CostPer1KIn: 0.015, CostPer1KOut: 0.075},
}

// Cheap tiers handle classification and formatting; generation gets the
// deep tier unless complexity says otherwise.
var routingRules = map[Stage]Tier{
	StageClassifyIntent:    TierFast,
	StageExtractKeywords:   TierFast,
	StageScoreClarity:      TierBalanced,
	StageDetectGaps:        TierBalanced,
	StageGenerateQuestions: TierBalanced,
	StagePrioritize:        TierFast,
	StageGenerateContract:  TierDeep,
	StageValidateFormat:    TierFast,
}

var fallbackChain = map[Tier]Tier{
	TierFast:     TierBalanced,
	TierBalanced: TierDeep,
	TierDeep:     TierBalanced,
}

// Router selects a tier per stage. Tiers can be disabled, forcing traffic
// onto their fallback.
type Router struct {
	enableFast bool
	enableDeep bool
	forceTier  Tier
}

type RouterOptions struct {
	EnableFast bool
	EnableDeep bool
	// ForceTier pins every stage to one tier. Used in tests and when a
	// deployment only provisions a single model.
	ForceTier Tier
}

func NewRouter(opts RouterOptions) *Router {
	return &Router{
		enableFast: opts.EnableFast,
		enableDeep: opts.EnableDeep,
		forceTier:  opts.ForceTier,
	}
}

// Select returns the tier for a stage. Complexity (1..5, from intent
// analysis) adjusts contract generation only: simple contracts do not need
// the deep tier, complex ones always get it when enabled.
func (r *Router) Select(stage Stage, complexity int) Tier {
	if r.forceTier != "" {
		return r.forceTier
	}

	tier, ok := routingRules[stage]
	if !ok {
		slog.Warn("unknown delegate stage, using balanced tier", "stage", stage)
		return TierBalanced
	}

	if tier == TierFast && !r.enableFast {
		tier = fallbackChain[TierFast]
	}
	if tier == TierDeep && !r.enableDeep {
		tier = fallbackChain[TierDeep]
	}

	if stage == StageGenerateContract && r.enableDeep {
		switch {
		case complexity > 0 && complexity <= 2:
			tier = TierBalanced
		case complexity >= 4:
			tier = TierDeep
		}
	}

	return tier
}

// Fallback returns the tier to retry on when the selected one is
// unavailable.
func (r *Router) Fallback(tier Tier) Tier {
	if next, ok := fallbackChain[tier]; ok {
		return next
	}
	return TierBalanced
}

// Config returns the call bounds for a tier.
func (r *Router) Config(tier Tier) TierConfig {
	return tierConfigs[tier]
}

// EstimateCost returns the USD cost of one call at the tier's published
// token rates.
func (r *Router) EstimateCost(tier Tier, inputTokens, outputTokens int) float64 {
	cfg := tierConfigs[tier]
	return float64(inputTokens)/1000*cfg.CostPer1KIn + float64(outputTokens)/1000*cfg.CostPer1KOut
}

// Plan maps every stage to its tier for one request, for status reporting.
func (r *Router) Plan(complexity int) map[Stage]Tier {
	plan := make(map[Stage]Tier, len(routingRules))
	for stage := range routingRules {
		plan[stage] = r.Select(stage, complexity)
	}
	return plan
}
