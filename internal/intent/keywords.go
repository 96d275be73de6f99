package intent

import (
	"slices"
	"strings"
)

// CueSet is a named, versioned list of surface cues. All classification in
// the analyzer is substring matching over lowercased text; there is no
// semantic understanding and none is intended.
type CueSet struct {
	Name    string
	Version string
	Cues    []string
}

// MatchAny reports whether any cue occurs in the lowercased text.
func (s CueSet) MatchAny(lower string) bool {
	for _, cue := range s.Cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// Hits counts how many cues occur in the lowercased text.
func (s CueSet) Hits(lower string) int {
	n := 0
	for _, cue := range s.Cues {
		if strings.Contains(lower, cue) {
			n++
		}
	}
	return n
}

// Contains reports exact membership, used for verb lookup on single tokens.
func (s CueSet) Contains(word string) bool {
	return slices.Contains(s.Cues, word)
}

// SoftwareKeywords marks software-domain requests.
var SoftwareKeywords = CueSet{
	Name:    "software",
	Version: "v1",
	Cues: []string{
		"add", "create", "implement", "build", "develop", "code",
		"function", "feature", "endpoint", "api", "database", "ui",
		"button", "form", "page", "component", "service", "module",
	},
}

// BugKeywords marks defect reports. Any hit wins classification outright.
var BugKeywords = CueSet{
	Name:    "bug",
	Version: "v1",
	Cues: []string{
		"fix", "bug", "error", "broken", "not working", "fails", "crash",
		"issue", "problem", "doesn't work", "incorrect", "500", "404",
	},
}

// BusinessKeywords marks business-outcome requests, which are usually vague.
var BusinessKeywords = CueSet{
	Name:    "business",
	Version: "v1",
	Cues: []string{
		"improve", "increase", "reduce", "optimize", "better", "more",
		"revenue", "users", "retention", "conversion", "growth", "metrics",
	},
}

// VagueVerbs are actions too unspecific to compile a contract from directly.
var VagueVerbs = CueSet{
	Name:    "vague_verbs",
	Version: "v1",
	Cues: []string{
		"improve", "optimize", "handle", "manage", "process", "deal with",
		"make better", "enhance", "upgrade", "modernize",
	},
}

// ClearVerbs are actions specific enough to anchor a contract title.
var ClearVerbs = CueSet{
	Name:    "clear_verbs",
	Version: "v1",
	Cues: []string{
		"add", "remove", "create", "delete", "update", "fix", "implement",
		"configure", "set up", "install", "deploy", "test", "validate",
		"export", "upload", "download", "save", "load", "import",
	},
}

// MultiWordVerbs are scanned before single tokens so that "set up" is not
// split into a stray "set".
var MultiWordVerbs = CueSet{
	Name:    "multi_word_verbs",
	Version: "v1",
	Cues:    []string{"set up", "make better", "deal with"},
}

// BugIndicators trigger the fix-action fallback when no verb was found.
var BugIndicators = CueSet{
	Name:    "bug_indicators",
	Version: "v1",
	Cues: []string{
		"error", "500", "404", "fails", "broken", "not working", "doesn't", "nothing",
	},
}

// ScopeIndicators suggest the request pins down where the work happens.
var ScopeIndicators = CueSet{
	Name:    "scope",
	Version: "v1",
	Cues: []string{
		"in", "on", "to", "for", "within",
		"page", "section", "app", "feature", "module",
	},
}

// ConstraintIndicators suggest the request limits what may change.
var ConstraintIndicators = CueSet{
	Name:    "constraints",
	Version: "v1",
	Cues: []string{
		"without", "don't", "only", "must", "should",
		"avoid", "exclude", "no", "not",
	},
}

// CriteriaIndicators suggest the request states observable success criteria.
var CriteriaIndicators = CueSet{
	Name:    "criteria",
	Version: "v1",
	Cues: []string{
		"when", "should", "must", "will", "can",
		"able to", "allows", "enables",
	},
}

// NonTechnicalPatterns are regex patterns for writing/admin requests that
// carry no software cues at all.
var NonTechnicalPatterns = []string{
	"write", "draft", "create.*document", "create.*email",
	"summarize", "list", "policy", "checklist", "note", "schedule",
}
