package gap

import (
	"strings"

	"gandalf.app/compiler/internal/intent"
	"gandalf.app/compiler/internal/model"
)

// Rule cue sets. These are deliberately separate from the analyzer's sets:
// detection rules evolve independently of classification.
var (
	formatTaskCues = intent.CueSet{Name: "format_task", Version: "v1",
		Cues: []string{"export", "upload", "download", "save"}}
	specificActionCues = intent.CueSet{Name: "specific_action", Version: "v1",
		Cues: []string{"set up", "configure", "add", "create", "fix", "update", "when", "alert"}}
	vagueImprovementCues = intent.CueSet{Name: "vague_improvement", Version: "v1",
		Cues: []string{"better", "improve", "optimize"}}
	exportBugCues = intent.CueSet{Name: "export_bug", Version: "v1",
		Cues: []string{"nothing", "not working", "doesn't work", "broken", "fails"}}
	exportCues = intent.CueSet{Name: "export", Version: "v1",
		Cues: []string{"export", "download", "save"}}
	exportFormats = intent.CueSet{Name: "export_formats", Version: "v1",
		Cues: []string{"csv", "pdf", "json", "xlsx", "xml"}}
	uploadFormats = intent.CueSet{Name: "upload_formats", Version: "v1",
		Cues: []string{"jpg", "png", "gif", "pdf", "image"}}
	uiElementCues = intent.CueSet{Name: "ui_element", Version: "v1",
		Cues: []string{"button", "link", "toggle"}}
	uiPlacementCues = intent.CueSet{Name: "ui_placement", Version: "v1",
		Cues: []string{"in", "on", "above", "below", "settings"}}
	intermittentCues = intent.CueSet{Name: "intermittent", Version: "v1",
		Cues: []string{"sometimes", "occasionally", "intermittent"}}
	iosVersionCues = intent.CueSet{Name: "ios_versions", Version: "v1",
		Cues: []string{"version", "ios 1", "ios 2", "+", "all"}}
	androidVersionCues = intent.CueSet{Name: "android_versions", Version: "v1",
		Cues: []string{"version", "android 1", "+", "all"}}
	environmentCues = intent.CueSet{Name: "environments", Version: "v1",
		Cues: []string{"production", "staging", "dev"}}
	growthCues = intent.CueSet{Name: "growth", Version: "v1",
		Cues: []string{"increase", "improve", "better", "more"}}
	reportingCues = intent.CueSet{Name: "reporting", Version: "v1",
		Cues: []string{"dashboard", "report", "metric"}}
	metricAreaCues = intent.CueSet{Name: "metric_areas", Version: "v1",
		Cues: []string{"revenue", "user", "sales", "activity"}}
	contentCues = intent.CueSet{Name: "provided_content", Version: "v1",
		Cues: []string{"transcript", "document"}}
)

// Resolved marks gap types already answered by the user on a resubmission.
// Rules producing a resolved type are skipped on the next pass.
type Resolved map[model.GapType]bool

// Detector finds missing information in an intent and classifies each gap as
// blocking or non-blocking. Detect is total and deterministic.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect runs every rule group in a fixed order and partitions the results.
// Blocking gaps are truncated to the first three encountered; the evaluation
// order of the rule groups is the tie-break policy, not an accident.
func (d *Detector) Detect(text string, analysis model.IntentAnalysis) model.GapAnalysis {
	return d.DetectWithResolved(text, analysis, nil)
}

// DetectWithResolved is Detect with a set of gap types treated as already
// answered; their rules are suppressed.
func (d *Detector) DetectWithResolved(text string, analysis model.IntentAnalysis, resolved Resolved) model.GapAnalysis {
	lower := strings.ToLower(text)

	var gaps []model.Gap

	switch analysis.Clarity {
	case model.ClarityIncomplete:
		gaps = append(gaps, incompleteRules(lower, analysis)...)
	case model.ClarityVague:
		gaps = append(gaps, vagueRules(lower, analysis)...)
	}

	switch analysis.IntentType {
	case model.IntentSoftwareFeature:
		gaps = append(gaps, featureRules(lower)...)
	case model.IntentBugReport:
		gaps = append(gaps, bugRules(lower)...)
	case model.IntentBusinessNeed:
		gaps = append(gaps, businessRules(lower)...)
	case model.IntentNonTechnical:
		gaps = append(gaps, nonTechnicalRules(text, lower)...)
	}

	var blocking, nonBlocking []model.Gap
	for _, g := range gaps {
		if resolved[g.Type] {
			continue
		}
		if g.Severity == model.SeverityBlocking {
			blocking = append(blocking, g)
		} else {
			nonBlocking = append(nonBlocking, g)
		}
	}

	if len(blocking) > model.MaxBlockingGaps {
		blocking = blocking[:model.MaxBlockingGaps]
	}

	hasBlocking := len(blocking) > 0
	return model.GapAnalysis{
		HasBlockingGaps: hasBlocking,
		BlockingGaps:    blocking,
		NonBlockingGaps: nonBlocking,
		CanProceed:      !hasBlocking,
	}
}

// incompleteRules fire when the analyzer could not find the basic elements of
// a request. Format tasks (export/upload/etc) are exempt: their gaps are
// handled by the sharper feature rules instead.
func incompleteRules(lower string, analysis model.IntentAnalysis) []model.Gap {
	if formatTaskCues.MatchAny(lower) {
		return nil
	}

	var gaps []model.Gap
	if analysis.ActionVerb == "" {
		gaps = append(gaps, model.Gap{
			Type:        model.GapVagueAction,
			Severity:    model.SeverityBlocking,
			Description: "What action should be taken?",
		})
	}
	if analysis.TargetObject == "" {
		gaps = append(gaps, model.Gap{
			Type:        model.GapMissingTarget,
			Severity:    model.SeverityBlocking,
			Description: "What is the target of this action?",
		})
	}
	if !analysis.HasScope {
		gaps = append(gaps, model.Gap{
			Type:        model.GapMissingScope,
			Severity:    model.SeverityBlocking,
			Description: "Where should this be implemented?",
		})
	}
	return gaps
}

func vagueRules(lower string, analysis model.IntentAnalysis) []model.Gap {
	var gaps []model.Gap
	hasSpecificAction := specificActionCues.MatchAny(lower)

	if vagueImprovementCues.MatchAny(lower) && !hasSpecificAction && !analysis.HasScope {
		gaps = append(gaps, model.Gap{
			Type:        model.GapVagueAction,
			Severity:    model.SeverityBlocking,
			Description: "What specific aspect needs improvement?",
		})
	}

	if !analysis.HasSuccessCriteria && !hasSpecificAction {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingCriteria,
			Severity:         model.SeverityNonBlocking,
			Description:      "Success criteria not explicitly defined",
			SuggestedDefault: "Standard implementation criteria",
		})
	}
	return gaps
}

func featureRules(lower string) []model.Gap {
	var gaps []model.Gap

	// A broken export is a bug, not a feature missing its format.
	isExportBug := exportBugCues.MatchAny(lower)

	if exportCues.MatchAny(lower) && !isExportBug && !exportFormats.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingFormat,
			Severity:         model.SeverityBlocking,
			Description:      "Which format should be used?",
			SuggestedDefault: "CSV",
		})
	}

	if strings.Contains(lower, "upload") && !uploadFormats.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingFormat,
			Severity:         model.SeverityBlocking,
			Description:      "Which file formats should be supported?",
			SuggestedDefault: "JPG and PNG",
		})
	}

	if uiElementCues.MatchAny(lower) && !uiPlacementCues.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingScope,
			Severity:         model.SeverityBlocking,
			Description:      "Where should the UI element be placed?",
			SuggestedDefault: "In settings menu",
		})
	}
	return gaps
}

func bugRules(lower string) []model.Gap {
	var gaps []model.Gap
	isIntermittent := intermittentCues.MatchAny(lower)

	if strings.Contains(lower, "ios") && !iosVersionCues.MatchAny(lower) && isIntermittent {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingPlatform,
			Severity:         model.SeverityBlocking,
			Description:      "Which version/platform is affected?",
			SuggestedDefault: "All supported versions",
		})
	}

	if strings.Contains(lower, "android") && !androidVersionCues.MatchAny(lower) && isIntermittent {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingPlatform,
			Severity:         model.SeverityBlocking,
			Description:      "Which version/platform is affected?",
			SuggestedDefault: "All supported versions",
		})
	}

	if (strings.Contains(lower, "release") || strings.Contains(lower, "deploy")) &&
		!environmentCues.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingPlatform,
			Severity:         model.SeverityBlocking,
			Description:      "Which environment is affected?",
			SuggestedDefault: "Production",
		})
	}
	return gaps
}

func businessRules(lower string) []model.Gap {
	var gaps []model.Gap

	// Business goals arrive vague almost by definition.
	if growthCues.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:        model.GapVagueAction,
			Severity:    model.SeverityBlocking,
			Description: "What specific metric or area should be targeted?",
		})
	}

	if reportingCues.MatchAny(lower) && !metricAreaCues.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingScope,
			Severity:         model.SeverityBlocking,
			Description:      "What type of metrics/data should be included?",
			SuggestedDefault: "Key performance metrics",
		})
	}
	return gaps
}

func nonTechnicalRules(text, lower string) []model.Gap {
	var gaps []model.Gap

	if (strings.Contains(lower, "summarize") || strings.Contains(lower, "review")) &&
		!contentCues.MatchAny(lower) {
		gaps = append(gaps, model.Gap{
			Type:        model.GapMissingContext,
			Severity:    model.SeverityBlocking,
			Description: "Please provide the content to process",
		})
	}

	if strings.Contains(lower, "schedule") && strings.Contains(lower, "team") &&
		!strings.ContainsAny(text, "23456789") {
		gaps = append(gaps, model.Gap{
			Type:             model.GapMissingScope,
			Severity:         model.SeverityBlocking,
			Description:      "How many people should be included?",
			SuggestedDefault: "5 members",
		})
	}
	return gaps
}
