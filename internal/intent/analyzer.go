package intent

import (
	"regexp"
	"strings"

	"gandalf.app/compiler/internal/model"
)

// Analyzer classifies raw intent text and extracts its action and target.
// Analyze is a total function of the input string: no I/O, no state, and the
// same input always yields the same analysis.
type Analyzer struct {
	nonTechnical []*regexp.Regexp
}

func NewAnalyzer() *Analyzer {
	patterns := make([]*regexp.Regexp, 0, len(NonTechnicalPatterns))
	for _, p := range NonTechnicalPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return &Analyzer{nonTechnical: patterns}
}

// Analyze classifies the text and scores its clarity, complexity and
// confidence. Empty or malformed input degrades to the incomplete path
// rather than failing.
func (a *Analyzer) Analyze(text string) model.IntentAnalysis {
	lower := strings.ToLower(text)

	intentType := a.classify(lower)
	action, target := extractActionTarget(text, lower)

	hasScope := ScopeIndicators.MatchAny(lower)
	hasConstraints := ConstraintIndicators.MatchAny(lower)
	hasCriteria := CriteriaIndicators.MatchAny(lower)

	clarity := determineClarity(lower, action, target, hasScope)

	return model.IntentAnalysis{
		IntentType:         intentType,
		Clarity:            clarity,
		ActionVerb:         action,
		TargetObject:       target,
		HasScope:           hasScope,
		HasConstraints:     hasConstraints,
		HasSuccessCriteria: hasCriteria,
		Complexity:         estimateComplexity(lower, intentType),
		Confidence:         scoreConfidence(action, target, clarity, intentType),
	}
}

// classify picks the intent type by priority: bug cues always win, then
// software vs business keyword counts (software wins ties), then
// non-technical patterns when no software cue is present at all.
func (a *Analyzer) classify(lower string) model.IntentType {
	softwareHits := SoftwareKeywords.Hits(lower)
	bugHits := BugKeywords.Hits(lower)
	businessHits := BusinessKeywords.Hits(lower)

	if bugHits > 0 {
		return model.IntentBugReport
	}
	if softwareHits > 0 && softwareHits >= businessHits {
		return model.IntentSoftwareFeature
	}
	if businessHits > 0 {
		return model.IntentBusinessNeed
	}
	if softwareHits == 0 {
		for _, re := range a.nonTechnical {
			if re.MatchString(lower) {
				return model.IntentNonTechnical
			}
		}
	}
	return model.IntentSoftwareFeature
}

// extractActionTarget finds the main verb and the short phrase after it.
// Multi-word verbs are matched first; otherwise the first five tokens are
// scanned against the verb sets. Bug reports without an explicit verb infer
// "fix" with the leading words as target.
func extractActionTarget(text, lower string) (action, target string) {
	words := strings.Fields(text)

	for _, verb := range MultiWordVerbs.Cues {
		idx := strings.Index(lower, verb)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(text[idx+len(verb):])
		restWords := strings.Fields(rest)
		if len(restWords) > 3 {
			restWords = restWords[:3]
		}
		return verb, strings.Join(restWords, " ")
	}

	limit := min(5, len(words))
	for i := 0; i < limit; i++ {
		w := strings.Trim(strings.ToLower(words[i]), ".,!?")
		if ClearVerbs.Contains(w) || VagueVerbs.Contains(w) {
			end := min(i+4, len(words))
			return w, strings.Join(words[i+1:end], " ")
		}
	}

	if BugIndicators.MatchAny(lower) {
		end := min(4, len(words))
		return "fix", strings.Join(words[:end], " ")
	}

	return "", ""
}

// determineClarity walks a fixed decision tree; order matters and is part of
// the contract with the gap detector.
func determineClarity(lower, action, target string, hasScope bool) model.Clarity {
	if action != "" && target != "" && hasScope && !VagueVerbs.Contains(action) {
		return model.ClarityClear
	}
	if action != "" && VagueVerbs.Contains(action) {
		return model.ClarityVague
	}
	if len(strings.Fields(lower)) < 4 {
		return model.ClarityIncomplete
	}
	if action != "" && target == "" {
		return model.ClarityVague
	}
	if action == "" || target == "" {
		return model.ClarityIncomplete
	}
	return model.ClarityClear
}

func estimateComplexity(lower string, intentType model.IntentType) int {
	complexity := 2
	if strings.Contains(lower, "multiple") || strings.Contains(lower, "several") {
		complexity++
	}
	if strings.Contains(lower, "integrate") || strings.Contains(lower, "system") {
		complexity++
	}
	if intentType == model.IntentSoftwareFeature {
		complexity++
	}
	if len(strings.Fields(lower)) > 20 {
		complexity++
	}
	return clampInt(complexity, 1, 5)
}

func scoreConfidence(action, target string, clarity model.Clarity, intentType model.IntentType) float64 {
	confidence := 0.5
	if action != "" {
		confidence += 0.2
	}
	if target != "" {
		confidence += 0.2
	}
	switch clarity {
	case model.ClarityClear:
		confidence += 0.1
	case model.ClarityIncomplete:
		confidence -= 0.2
	}
	if intentType == model.IntentBugReport || intentType == model.IntentSoftwareFeature {
		confidence += 0.1
	}
	return clampFloat(confidence, 0.0, 1.0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
