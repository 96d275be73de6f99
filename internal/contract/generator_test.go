package contract_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gandalf.app/compiler/internal/contract"
	"gandalf.app/compiler/internal/intent"
	"gandalf.app/compiler/internal/model"
)

var _ = Describe("Generator", func() {
	var (
		analyzer  *intent.Analyzer
		generator *contract.Generator
	)

	generate := func(text string) model.Contract {
		return generator.Generate(text, analyzer.Analyze(text))
	}

	BeforeEach(func() {
		analyzer = intent.NewAnalyzer()
		generator = contract.NewGenerator()
	})

	Describe("titles", func() {
		It("builds the title from action and target", func() {
			Expect(generate("fix 500 error on login page").Title).To(Equal("Fix 500 error on"))
		})

		It("maps improve to optimize for performance requests", func() {
			c := generate("improve performance of the search page")
			Expect(strings.HasPrefix(c.Title, "Optimize ")).To(BeTrue())
		})

		It("strips articles from the target", func() {
			c := generate("add the export button to reports")
			Expect(c.Title).To(Equal("Add export button"))
		})

		It("falls back to the first sentence without action and target", func() {
			c := generate("the quarterly report was great. thanks everyone.")
			Expect(c.Title).To(Equal("The quarterly report was great"))
		})
	})

	Describe("bug contracts", func() {
		var c model.Contract

		BeforeEach(func() {
			c = generate("fix 500 error on login page")
		})

		It("states the error context", func() {
			Expect(c.Context[0]).To(Equal("Error reported in current system behavior"))
		})

		It("checks that the error is gone", func() {
			Expect(c.DefinitionOfDone).To(ContainElement("Error no longer occurs"))
			Expect(c.DefinitionOfDone).To(ContainElement("Error logs show no related errors"))
		})

		It("constrains against new issues", func() {
			Expect(c.Constraints).To(ContainElement("Do not introduce new issues"))
		})

		It("delivers the fix", func() {
			Expect(c.Deliverables).To(ContainElement("Bug fix implementation"))
		})
	})

	Describe("non-technical contracts", func() {
		var c model.Contract

		BeforeEach(func() {
			c = generate("write a short thank-you email")
		})

		It("delivers email text", func() {
			Expect(c.Deliverables).To(Equal([]string{"Email text"}))
		})

		It("keeps the content brief", func() {
			Expect(c.Constraints).To(ContainElement("Keep content brief and concise"))
		})

		It("requires a concise message", func() {
			Expect(c.DefinitionOfDone).To(ContainElement("Message is concise (under 100 words)"))
		})
	})

	Describe("bounds", func() {
		inputs := []string{
			"", "go", "fix 500 error on login page", "add CSV export button",
			"write a short thank-you email", "increase revenue", "improve performance",
			"add upload with multiple integrations across the system and settings toggle email filter export button",
			// Non-technical text matching no checklist cue still needs the
			// definition-of-done floor.
			"enhance the summary draft for marketing",
		}

		It("keeps every section within its documented bounds", func() {
			for _, text := range inputs {
				c := generate(text)
				Expect(len(c.Context)).To(BeNumerically(">=", 1))
				Expect(len(c.Context)).To(BeNumerically("<=", model.MaxContextItems))
				Expect(len(c.DefinitionOfDone)).To(BeNumerically(">=", model.MinDefinitionOfDone))
				Expect(len(c.DefinitionOfDone)).To(BeNumerically("<=", model.MaxDefinitionOfDone))
				Expect(len(c.Constraints)).To(BeNumerically("<=", model.MaxConstraints))
				Expect(len(c.Deliverables)).To(BeNumerically("<=", model.MaxDeliverables))
				Expect(len(c.Deliverables)).To(BeNumerically(">=", 1))
			}
		})

		It("pads a cue-less non-technical request up to the floor", func() {
			c := generate("enhance the summary draft for marketing")
			Expect(c.DefinitionOfDone).To(Equal([]string{
				"Changes documented",
				"No new errors introduced",
				"Result has been verified",
			}))
		})
	})

	Describe("overrides", func() {
		It("folds answers in as leading constraints in fixed order", func() {
			c := generator.GenerateWithOverrides("add export button",
				analyzer.Analyze("add export button"),
				contract.Overrides{
					model.GapMissingScope:  "reports page",
					model.GapMissingFormat: "PDF",
				})

			Expect(c.Constraints[0]).To(Equal("Use format: PDF"))
			Expect(c.Constraints[1]).To(Equal("Scope: reports page"))
		})

		It("changes nothing when empty", func() {
			plain := generator.Generate("fix 500 error on login page", analyzer.Analyze("fix 500 error on login page"))
			with := generator.GenerateWithOverrides("fix 500 error on login page", analyzer.Analyze("fix 500 error on login page"), contract.Overrides{})
			Expect(with).To(Equal(plain))
		})
	})

	Describe("Render", func() {
		It("renders the five sections as markdown", func() {
			c := generate("fix 500 error on login page")
			rendered := contract.Render(c)

			Expect(strings.HasPrefix(rendered, "# Task: Fix 500 error on")).To(BeTrue())
			Expect(rendered).To(ContainSubstring("## Context"))
			Expect(rendered).To(ContainSubstring("## Definition of Done"))
			Expect(rendered).To(ContainSubstring("- [ ] Error no longer occurs"))
			Expect(rendered).To(ContainSubstring("## Deliverables"))
		})

		It("omits the constraints section when there are none", func() {
			c := generate("hello world how are you doing")
			if len(c.Constraints) == 0 {
				Expect(contract.Render(c)).NotTo(ContainSubstring("## Constraints"))
			}
		})
	})
})
