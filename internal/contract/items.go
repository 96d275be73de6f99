package contract

import (
	"strings"

	"gandalf.app/compiler/internal/model"
)

// buildConstraints assembles at most five hard limits: answered overrides
// first (they are authoritative), then explicit negation cues, intent-type
// rules, tone cues and brevity cues, in that order.
func buildConstraints(text string, analysis model.IntentAnalysis, overrides Overrides) []string {
	lower := strings.ToLower(text)
	var constraints []string

	constraints = append(constraints, overrideConstraints(overrides)...)

	if strings.Contains(lower, "without") || strings.Contains(lower, "don't") {
		if strings.Contains(lower, "without changing") {
			constraints = append(constraints, "Do not modify existing functionality")
		} else if strings.Contains(lower, "don't change") {
			constraints = append(constraints, "Preserve current behavior in other areas")
		}
	}

	if strings.Contains(lower, "only") {
		constraints = append(constraints, "Limit changes to specified scope only")
	}

	switch analysis.IntentType {
	case model.IntentSoftwareFeature:
		if strings.Contains(lower, "settings") || strings.Contains(lower, "ui") {
			constraints = append(constraints, "Do not change non-UI functionality")
		}
	case model.IntentBugReport:
		constraints = append(constraints, "Do not introduce new issues")
	case model.IntentNonTechnical:
		if strings.Contains(lower, "tone") || strings.Contains(lower, "professional") {
			constraints = append(constraints, "Use professional tone")
		} else if strings.Contains(lower, "friendly") {
			constraints = append(constraints, "Use friendly, conversational tone")
		}
	}

	if containsAny(lower, "short", "brief", "concise", "one page") {
		if strings.Contains(lower, "page") {
			constraints = append(constraints, "Content must fit on one page")
		} else {
			constraints = append(constraints, "Keep content brief and concise")
		}
	}

	if len(constraints) > model.MaxConstraints {
		constraints = constraints[:model.MaxConstraints]
	}
	return constraints
}

// overrideConstraints turns clarification answers into leading constraint
// bullets, in a fixed gap-type order so output stays deterministic.
func overrideConstraints(overrides Overrides) []string {
	if len(overrides) == 0 {
		return nil
	}

	order := []struct {
		gapType model.GapType
		prefix  string
	}{
		{model.GapMissingFormat, "Use format: "},
		{model.GapMissingPlatform, "Target platform: "},
		{model.GapMissingScope, "Scope: "},
		{model.GapVagueAction, "Focus area: "},
		{model.GapMissingTarget, "Target: "},
		{model.GapMissingContext, "Source content: "},
		{model.GapMissingCriteria, "Success criteria: "},
	}

	var constraints []string
	for _, o := range order {
		if answer, ok := overrides[o.gapType]; ok && answer != "" {
			constraints = append(constraints, o.prefix+answer)
		}
	}
	return constraints
}

// buildDeliverables names the artifacts only — no descriptions, max five.
func buildDeliverables(text string, analysis model.IntentAnalysis) []string {
	lower := strings.ToLower(text)
	var deliverables []string

	switch analysis.IntentType {
	case model.IntentSoftwareFeature:
		if containsAny(lower, "ui", "page", "component") {
			deliverables = append(deliverables, "Updated UI component(s)")
		}
		if containsAny(lower, "api", "endpoint") {
			deliverables = append(deliverables, "API endpoint implementation")
		}
		if strings.Contains(lower, "database") {
			deliverables = append(deliverables, "Database schema changes")
		}
		if len(deliverables) == 0 {
			deliverables = append(deliverables, "Source code implementation")
		}
		if analysis.Complexity > 2 {
			deliverables = append(deliverables, "Unit tests")
		}

	case model.IntentBugReport:
		deliverables = append(deliverables, "Bug fix implementation")
		if analysis.Complexity > 2 {
			deliverables = append(deliverables, "Test case for the fix")
		}

	case model.IntentNonTechnical:
		switch {
		case strings.Contains(lower, "email"):
			if strings.Contains(lower, "template") {
				deliverables = append(deliverables, "Email template")
			} else {
				deliverables = append(deliverables, "Email text")
			}
		case containsAny(lower, "document", "policy"):
			deliverables = append(deliverables, "Document file")
		case containsAny(lower, "checklist", "list"):
			deliverables = append(deliverables, "Checklist document")
		case strings.Contains(lower, "schedule"):
			deliverables = append(deliverables, "Schedule template")
		default:
			deliverables = append(deliverables, "Written content")
		}

	default:
		deliverables = append(deliverables, "Implementation artifacts")
	}

	if len(deliverables) > model.MaxDeliverables {
		deliverables = deliverables[:model.MaxDeliverables]
	}
	return deliverables
}

func containsAny(lower string, cues ...string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
