package contract

import (
	"strings"

	"gandalf.app/compiler/internal/model"
)

// buildDefinitionOfDone emits 3-7 objectively checkable completion items.
// Intent-specific items come first, software features get a verification
// item appended, and generic filler pads up to the floor of three.
func buildDefinitionOfDone(text string, analysis model.IntentAnalysis) []string {
	lower := strings.ToLower(text)
	var dod []string

	switch analysis.IntentType {
	case model.IntentBugReport:
		dod = append(dod, bugChecklist(lower)...)
	case model.IntentSoftwareFeature:
		dod = append(dod, featureChecklist(lower)...)
	case model.IntentNonTechnical:
		dod = append(dod, nonTechnicalChecklist(lower)...)
	default:
		dod = append(dod,
			"Requirements from user prompt are met",
			"Output is complete and functional",
			"Result has been verified",
		)
	}

	if analysis.IntentType == model.IntentSoftwareFeature {
		dod = append(dod, "Implementation tested and verified")
	}

	// A cue-less intent can arrive here with fewer than three items, so pad
	// from the fixed filler list until the floor holds.
	fillers := []string{"Changes documented", "No new errors introduced", "Result has been verified"}
	for _, filler := range fillers {
		if len(dod) >= model.MinDefinitionOfDone {
			break
		}
		dod = append(dod, filler)
	}
	if len(dod) > model.MaxDefinitionOfDone {
		dod = dod[:model.MaxDefinitionOfDone]
	}
	return dod
}

func bugChecklist(lower string) []string {
	var dod []string

	switch {
	case strings.Contains(lower, "error"):
		dod = append(dod, "Error no longer occurs", "Error logs show no related errors")
	case strings.Contains(lower, "blank screen") || strings.Contains(lower, "nothing"):
		dod = append(dod, "Expected content displays correctly")
	default:
		dod = append(dod, "Reported issue is resolved")
	}

	dod = append(dod,
		"Fix verified in affected scenarios",
		"No regression in related functionality",
	)
	return dod
}

// featureChecklist appends one or two fixed items per matched cue; an intent
// matching no cue gets the generic completion pair.
func featureChecklist(lower string) []string {
	var dod []string

	if strings.Contains(lower, "toggle") || strings.Contains(lower, "button") {
		dod = append(dod,
			"UI element is visible and accessible",
			"Clicking the element triggers expected behavior",
		)
	}
	if strings.Contains(lower, "filter") {
		dod = append(dod,
			"Filter correctly narrows results",
			"Filter can be cleared",
		)
	}
	if strings.Contains(lower, "export") {
		dod = append(dod,
			"Export generates file with correct data",
			"Downloaded file is in specified format",
		)
	}
	if strings.Contains(lower, "upload") {
		dod = append(dod,
			"File upload accepts specified formats",
			"Uploaded files are processed correctly",
		)
	}
	if strings.Contains(lower, "email") && !strings.Contains(lower, "send") {
		dod = append(dod, "Email template includes all required elements")
	}
	if strings.Contains(lower, "settings") || strings.Contains(lower, "toggle") {
		dod = append(dod, "User selection persists across sessions")
	}

	if len(dod) == 0 {
		dod = append(dod,
			"Feature is implemented as described",
			"Feature works in all specified scenarios",
		)
	}
	return dod
}

func nonTechnicalChecklist(lower string) []string {
	var dod []string

	if strings.Contains(lower, "email") || strings.Contains(lower, "note") {
		dod = append(dod,
			"Message includes a greeting",
			"Message conveys intended information",
		)
		if strings.Contains(lower, "short") || strings.Contains(lower, "brief") {
			dod = append(dod, "Message is concise (under 100 words)")
		}
	}
	if strings.Contains(lower, "checklist") || strings.Contains(lower, "list") {
		dod = append(dod,
			"List includes all required items",
			"Items are formatted as bullet points",
		)
	}
	if strings.Contains(lower, "policy") || strings.Contains(lower, "document") {
		dod = append(dod,
			"Document includes all required sections",
			"Content follows appropriate tone",
		)
	}
	if strings.Contains(lower, "schedule") {
		dod = append(dod,
			"Schedule covers specified time period",
			"All required participants are included",
		)
	}
	return dod
}
