package clarify_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gandalf.app/compiler/internal/clarify"
	"gandalf.app/compiler/internal/gap"
	"gandalf.app/compiler/internal/intent"
	"gandalf.app/compiler/internal/model"
)

var _ = Describe("Generator", func() {
	var (
		analyzer  *intent.Analyzer
		detector  *gap.Detector
		generator *clarify.Generator
	)

	generate := func(text string) []model.Clarification {
		analysis := analyzer.Analyze(text)
		gaps := detector.Detect(text, analysis)
		return generator.Generate(text, analysis, gaps)
	}

	BeforeEach(func() {
		analyzer = intent.NewAnalyzer()
		detector = gap.NewDetector()
		generator = clarify.NewGenerator()
	})

	It("returns no questions when nothing blocks", func() {
		Expect(generate("fix 500 error on login page")).To(BeEmpty())
	})

	It("asks the export format question with CSV as default", func() {
		questions := generate("add export button")
		Expect(questions).To(HaveLen(1))

		q := questions[0]
		Expect(q.GapType).To(Equal(model.GapMissingFormat))
		Expect(q.Question).To(Equal("Which format should the report be exported in?"))
		Expect(q.Options).To(Equal(map[string]string{
			"A": "CSV", "B": "PDF", "C": "XLSX",
		}))
		Expect(q.DefaultOption).To(Equal(model.OptionA))
	})

	It("asks the image format question for uploads", func() {
		questions := generate("add upload for profile photos")
		Expect(questions).To(HaveLen(1))
		Expect(questions[0].Question).To(Equal("What image formats should be supported?"))
		Expect(questions[0].Options[model.OptionA]).To(Equal("JPG and PNG"))
	})

	It("defaults mobile platform questions to all versions", func() {
		questions := generate("app crash happens sometimes on ios")
		Expect(questions).To(HaveLen(1))
		Expect(questions[0].Question).To(Equal("Which iOS version is affected?"))
		Expect(questions[0].DefaultOption).To(Equal(model.OptionC))
	})

	It("asks for the environment on release bugs", func() {
		questions := generate("the release is broken")
		Expect(questions).To(HaveLen(1))
		Expect(questions[0].Question).To(Equal("Which environment is affected?"))
		Expect(questions[0].Options[model.OptionA]).To(Equal("Production"))
		Expect(questions[0].DefaultOption).To(Equal(model.OptionA))
	})

	It("asks about team size for schedules", func() {
		questions := generate("draft a team schedule")
		found := false
		for _, q := range questions {
			if q.Question == "How many team members should be included in the schedule?" {
				found = true
				Expect(q.DefaultOption).To(Equal(model.OptionB))
				Expect(q.Options[model.OptionB]).To(Equal("5 members"))
			}
		}
		Expect(found).To(BeTrue())
	})

	Describe("invariants", func() {
		inputs := []string{"go", "add export button", "increase revenue", "summarize the meeting", "improve everything"}

		It("asks at most three questions, each with exactly three options and a valid default", func() {
			for _, text := range inputs {
				questions := generate(text)
				Expect(len(questions)).To(BeNumerically("<=", model.MaxBlockingGaps))
				for _, q := range questions {
					Expect(q.Options).To(HaveLen(3))
					Expect(q.Options).To(HaveKey(model.OptionA))
					Expect(q.Options).To(HaveKey(model.OptionB))
					Expect(q.Options).To(HaveKey(model.OptionC))
					Expect([]string{model.OptionA, model.OptionB, model.OptionC}).To(ContainElement(q.DefaultOption))
				}
			}
		})
	})

	Describe("Render", func() {
		It("flattens options into lettered strings and leaves resolved_by unset", func() {
			questions := generate("add export button")
			set := generator.Render(questions)

			Expect(set.ResolvedBy).To(BeNil())
			Expect(set.Asked).To(HaveLen(1))
			Expect(set.Asked[0].GapType).To(Equal(model.GapMissingFormat))
			Expect(set.Asked[0].Options).To(Equal([]string{"A: CSV", "B: PDF", "C: XLSX"}))
		})
	})

	Describe("RenderText", func() {
		It("is empty for an empty set", func() {
			Expect(clarify.RenderText(model.ClarificationSet{})).To(BeEmpty())
		})

		It("numbers questions and indents options", func() {
			set := generator.Render(generate("add export button"))
			text := clarify.RenderText(set)

			Expect(strings.HasPrefix(text, "Before proceeding, clarification is needed:")).To(BeTrue())
			Expect(text).To(ContainSubstring("1) Which format should the report be exported in?"))
			Expect(text).To(ContainSubstring("   - A: CSV"))
		})
	})
})
