package clarify

import (
	"gandalf.app/compiler/internal/model"
)

// Generator renders blocking gaps into multiple-choice clarification
// questions: always exactly three options keyed A/B/C plus one default, and
// never more than three questions per response.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces one question per blocking gap, dispatched by gap type and
// refined by text cues. Returns an empty slice when nothing blocks. The gap
// detector already caps blocking gaps at three; the cap is re-applied here so
// a misbehaving caller cannot widen the question set.
func (g *Generator) Generate(text string, analysis model.IntentAnalysis, gaps model.GapAnalysis) []model.Clarification {
	if !gaps.HasBlockingGaps {
		return []model.Clarification{}
	}

	blocking := gaps.BlockingGaps
	if len(blocking) > model.MaxBlockingGaps {
		blocking = blocking[:model.MaxBlockingGaps]
	}

	clarifications := make([]model.Clarification, 0, len(blocking))
	for _, gp := range blocking {
		cl := g.forGap(gp, text, analysis)
		cl.GapType = gp.Type
		clarifications = append(clarifications, cl)
	}
	return clarifications
}

// forGap routes a gap to its template family. Unknown gap types fall back to
// a generic question seeded from the gap's suggested default.
func (g *Generator) forGap(gp model.Gap, text string, analysis model.IntentAnalysis) model.Clarification {
	switch gp.Type {
	case model.GapMissingFormat:
		return formatQuestion(text)
	case model.GapMissingPlatform:
		return platformQuestion(text)
	case model.GapMissingScope:
		return scopeQuestion(text, analysis.IntentType)
	case model.GapVagueAction:
		return actionQuestion(text)
	case model.GapMissingTarget:
		return targetQuestion()
	case model.GapMissingContext:
		return contextQuestion()
	}

	optionA := "Option A"
	if gp.SuggestedDefault != "" {
		optionA = gp.SuggestedDefault
	}
	return model.Clarification{
		Question: gp.Description,
		Options: map[string]string{
			model.OptionA: optionA,
			model.OptionB: "Option B",
			model.OptionC: "Option C",
		},
		DefaultOption: model.OptionA,
	}
}

// Render flattens clarifications into the wire shape: options become
// "KEY: label" strings in key order, and resolved_by stays nil until the
// caller resolves the questions.
func (g *Generator) Render(clarifications []model.Clarification) model.ClarificationSet {
	asked := make([]model.AskedQuestion, 0, len(clarifications))
	for _, c := range clarifications {
		asked = append(asked, model.AskedQuestion{
			GapType:  c.GapType,
			Question: c.Question,
			Options: []string{
				model.OptionA + ": " + c.Options[model.OptionA],
				model.OptionB + ": " + c.Options[model.OptionB],
				model.OptionC + ": " + c.Options[model.OptionC],
			},
			DefaultOption: c.DefaultOption,
		})
	}
	return model.ClarificationSet{Asked: asked, ResolvedBy: nil}
}
