package contract

import (
	"regexp"
	"strings"

	"gandalf.app/compiler/internal/model"
)

// Overrides carries answers from a resolved clarification round, keyed by the
// gap type that produced the question. They are folded into generation as
// authoritative constraints, ahead of anything inferred from the text.
type Overrides map[model.GapType]string

// Generator assembles the five-part contract from an analyzed intent. It is
// only invoked once gap detection reports the intent can proceed, and it is
// total: every branch resolves to a documented fallback, never an error.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(text string, analysis model.IntentAnalysis) model.Contract {
	return g.GenerateWithOverrides(text, analysis, nil)
}

func (g *Generator) GenerateWithOverrides(text string, analysis model.IntentAnalysis, overrides Overrides) model.Contract {
	return model.Contract{
		Title:            buildTitle(text, analysis),
		Context:          buildContext(text, analysis),
		DefinitionOfDone: buildDefinitionOfDone(text, analysis),
		Constraints:      buildConstraints(text, analysis, overrides),
		Deliverables:     buildDeliverables(text, analysis),
	}
}

var articleRe = regexp.MustCompile(`(?i)\b(a|an|the)\b`)

// buildTitle renders "{Action} {target}" with the action mapped through the
// vague-to-specific verb table, or falls back to the first sentence of the
// input when either part is missing.
func buildTitle(text string, analysis model.IntentAnalysis) string {
	action := analysis.ActionVerb
	target := analysis.TargetObject

	if action != "" && target != "" {
		return capitalize(mapToClearVerb(action, text)) + " " + cleanTarget(target)
	}
	return titleFromText(text)
}

// cleanTarget strips articles, collapses whitespace and truncates long
// targets to keep titles scannable.
func cleanTarget(target string) string {
	target = articleRe.ReplaceAllString(target, "")
	target = strings.Join(strings.Fields(target), " ")
	if len(target) > 40 {
		target = target[:37] + "..."
	}
	return strings.TrimSpace(target)
}

// mapToClearVerb swaps vague verbs for specific ones. "improve" picks its
// replacement based on whether the request is about performance.
func mapToClearVerb(verb, text string) string {
	lower := strings.ToLower(text)

	switch verb {
	case "improve":
		if strings.Contains(lower, "performance") {
			return "optimize"
		}
		return "enhance"
	case "handle":
		return "process"
	case "manage":
		return "configure"
	case "deal with":
		return "process"
	case "make better":
		return "improve"
	}
	return verb
}

func titleFromText(text string) string {
	text = strings.TrimSpace(text)
	first, _, _ := strings.Cut(text, ".")
	first = capitalize(first)
	if len(first) > 50 {
		return first[:47] + "..."
	}
	return first
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// buildContext emits one or two bullets: what triggered the task, and — only
// when the task is complex and explicitly constrained — the key constraint.
// Free-text background never makes it in.
func buildContext(text string, analysis model.IntentAnalysis) []string {
	context := make([]string, 0, model.MaxContextItems)
	lower := strings.ToLower(text)

	switch analysis.IntentType {
	case model.IntentBugReport:
		context = append(context, bugContext(lower))
	case model.IntentSoftwareFeature:
		context = append(context, featureContext(lower))
	case model.IntentNonTechnical:
		context = append(context, nonTechnicalContext(lower))
	default:
		context = append(context, "Task requested based on user requirements")
	}

	if analysis.Complexity > 3 && analysis.HasConstraints {
		if constraint := keyConstraint(lower); constraint != "" {
			context = append(context, constraint)
		}
	}

	if len(context) > model.MaxContextItems {
		context = context[:model.MaxContextItems]
	}
	return context
}

func bugContext(lower string) string {
	switch {
	case strings.Contains(lower, "fails") || strings.Contains(lower, "error"):
		return "Error reported in current system behavior"
	case strings.Contains(lower, "not working") || strings.Contains(lower, "broken"):
		return "Functionality is not working as expected"
	default:
		return "Bug fix required in existing feature"
	}
}

func featureContext(lower string) string {
	if strings.Contains(lower, "add") || strings.Contains(lower, "create") {
		switch {
		case strings.Contains(lower, "page"):
			return "Existing page needs new feature"
		case strings.Contains(lower, "app"):
			return "Application needs new functionality"
		default:
			return "New feature required"
		}
	}
	if strings.Contains(lower, "update") || strings.Contains(lower, "change") {
		return "Existing feature needs modification"
	}
	return "Feature enhancement requested"
}

func nonTechnicalContext(lower string) string {
	switch {
	case strings.Contains(lower, "email") || strings.Contains(lower, "note"):
		return "Text content needs to be created"
	case strings.Contains(lower, "document") || strings.Contains(lower, "policy"):
		return "Document creation requested"
	case strings.Contains(lower, "checklist") || strings.Contains(lower, "schedule"):
		return "Structured list needs to be created"
	default:
		return "Content creation requested"
	}
}

// keyConstraint surfaces a "don't change X" style restriction when one is
// stated; anything subtler is left to the constraints section.
func keyConstraint(lower string) string {
	if strings.Contains(lower, "without changing") || strings.Contains(lower, "don't change") {
		return "Existing functionality must remain unchanged"
	}
	return ""
}
