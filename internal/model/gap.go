package model

// GapType identifies the kind of information missing from an intent.
type GapType string

const (
	GapMissingScope    GapType = "missing_scope"
	GapMissingPlatform GapType = "missing_platform"
	GapMissingFormat   GapType = "missing_format"
	GapMissingTarget   GapType = "missing_target"
	GapMissingCriteria GapType = "missing_criteria"
	GapVagueAction     GapType = "vague_action"
	GapMissingContext  GapType = "missing_context"
	GapAmbiguousIntent GapType = "ambiguous_intent"
)

// GapSeverity decides whether generation halts on a gap.
type GapSeverity string

const (
	SeverityBlocking    GapSeverity = "blocking"     // must ask the user
	SeverityNonBlocking GapSeverity = "non_blocking" // proceed with a default
)

// Gap is a single detected piece of missing information. Severity is fixed by
// the rule that produced the gap and never recomputed downstream.
type Gap struct {
	Type             GapType     `json:"gap_type"`
	Severity         GapSeverity `json:"severity"`
	Description      string      `json:"description"`
	SuggestedDefault string      `json:"suggested_default,omitempty"`
}

// MaxBlockingGaps caps how many blocking gaps survive detection. The first
// three in rule-evaluation order win; there is no priority reordering.
const MaxBlockingGaps = 3

// GapAnalysis is the output of the gap detection stage.
type GapAnalysis struct {
	HasBlockingGaps bool  `json:"has_blocking_gaps"`
	BlockingGaps    []Gap `json:"blocking_gaps"`
	NonBlockingGaps []Gap `json:"non_blocking_gaps"`
	CanProceed      bool  `json:"can_proceed"`
}
