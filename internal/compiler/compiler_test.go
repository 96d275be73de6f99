package compiler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gandalf.app/compiler/internal/compiler"
	"gandalf.app/compiler/internal/delegate"
	"gandalf.app/compiler/internal/model"
)

var _ = Describe("Compiler", func() {
	var (
		c   *compiler.Compiler
		ctx context.Context
	)

	BeforeEach(func() {
		c = compiler.New()
		ctx = context.Background()
	})

	Describe("Compile", func() {
		Context("with a clear bug report", func() {
			var resp *model.CompileResponse

			BeforeEach(func() {
				resp = c.Compile(ctx, compiler.Request{
					Text:         "fix 500 error on login page",
					IntentID:     1001,
					GeneratedFor: "claude_code",
				})
			})

			It("returns a contract without asking questions", func() {
				Expect(resp.RequiresClarification).To(BeFalse())
				Expect(resp.Contract).NotTo(BeNil())
				Expect(resp.Contract.Title).To(Equal("Fix 500 error on"))
				Expect(resp.Clarifications.Asked).To(BeEmpty())
			})

			It("marks gaps default-resolved even when no questions were asked", func() {
				Expect(resp.Clarifications.ResolvedBy).NotTo(BeNil())
				Expect(*resp.Clarifications.ResolvedBy).To(Equal("default"))
			})

			It("fills telemetry for the intent", func() {
				Expect(resp.Telemetry.IntentID).To(Equal(int64(1001)))
				Expect(resp.Telemetry.Executor.Name).To(Equal("claude_code"))
				Expect(resp.Telemetry.Executor.Version).To(Equal("1.0"))
				Expect(resp.Telemetry.UserQuestionsCount).To(BeZero())
				Expect(resp.Telemetry.ExecutionResult).To(Equal(model.ResultUnknown))
				Expect(resp.Telemetry.CreatedAt).NotTo(BeZero())
			})

			It("reports efficiency over the rendered contract", func() {
				Expect(resp.Telemetry.Efficiency).NotTo(BeNil())
				Expect(resp.Telemetry.Efficiency.UserChars).To(Equal(len("fix 500 error on login page")))
				Expect(resp.Telemetry.Efficiency.ContractChars).To(BeNumerically(">", 0))
			})
		})

		Context("with an incomplete request", func() {
			var resp *model.CompileResponse

			BeforeEach(func() {
				resp = c.Compile(ctx, compiler.Request{
					Text:         "go",
					IntentID:     1002,
					GeneratedFor: "claude_code",
					ExecutorVer:  "2.3",
				})
			})

			It("asks instead of generating", func() {
				Expect(resp.RequiresClarification).To(BeTrue())
				Expect(resp.Contract).To(BeNil())
				Expect(resp.Clarifications.Asked).NotTo(BeEmpty())
				Expect(len(resp.Clarifications.Asked)).To(BeNumerically("<=", 3))
			})

			It("renders three options per question", func() {
				for _, q := range resp.Clarifications.Asked {
					Expect(q.Options).To(HaveLen(3))
					Expect(q.Options[0]).To(HavePrefix("A: "))
					Expect(q.DefaultOption).To(BeElementOf("A", "B", "C"))
				}
			})

			It("marks telemetry as pending clarification", func() {
				Expect(resp.Telemetry.ExecutionResult).To(Equal(model.ResultPendingClarification))
				Expect(resp.Telemetry.UserQuestionsCount).To(Equal(len(resp.Clarifications.Asked)))
				Expect(resp.Telemetry.Executor.Version).To(Equal("2.3"))
				Expect(resp.Telemetry.Efficiency).NotTo(BeNil())
			})
		})
	})

	Describe("Resubmit", func() {
		req := compiler.Request{
			Text:         "add export button",
			IntentID:     2001,
			GeneratedFor: "claude_code",
		}

		It("produces a contract once the format gap is answered", func() {
			first := c.Compile(ctx, req)
			Expect(first.RequiresClarification).To(BeTrue())

			resp := c.Resubmit(ctx, req, []compiler.Answer{
				{QuestionID: 1, GapType: model.GapMissingFormat, Value: "PDF"},
			})

			Expect(resp.RequiresClarification).To(BeFalse())
			Expect(resp.Contract).NotTo(BeNil())
		})

		It("folds user answers in as leading constraints", func() {
			resp := c.Resubmit(ctx, req, []compiler.Answer{
				{QuestionID: 1, GapType: model.GapMissingFormat, Value: "PDF"},
			})

			Expect(resp.Contract.Constraints).NotTo(BeEmpty())
			Expect(resp.Contract.Constraints[0]).To(Equal("Use format: PDF"))
		})

		It("attributes resolution to the user when any answer was theirs", func() {
			resp := c.Resubmit(ctx, req, []compiler.Answer{
				{QuestionID: 1, GapType: model.GapMissingFormat, Value: "PDF", Defaulted: false},
			})

			Expect(resp.Clarifications.ResolvedBy).NotTo(BeNil())
			Expect(*resp.Clarifications.ResolvedBy).To(Equal("user"))
		})

		It("attributes resolution to defaults when every answer was defaulted", func() {
			resp := c.Resubmit(ctx, req, []compiler.Answer{
				{QuestionID: 1, GapType: model.GapMissingFormat, Value: "CSV", Defaulted: true},
			})

			Expect(resp.Clarifications.ResolvedBy).NotTo(BeNil())
			Expect(*resp.Clarifications.ResolvedBy).To(Equal("default"))
			Expect(resp.Contract.Constraints[0]).To(Equal("Use format: CSV"))
		})

		It("asks again when unresolved blocking gaps remain", func() {
			vague := compiler.Request{Text: "go", IntentID: 2002, GeneratedFor: "claude_code"}

			resp := c.Resubmit(ctx, vague, []compiler.Answer{
				{QuestionID: 1, GapType: model.GapVagueAction, Value: "deploy the service"},
			})

			Expect(resp.RequiresClarification).To(BeTrue())
			Expect(resp.Contract).To(BeNil())
			for _, q := range resp.Clarifications.Asked {
				Expect(q.GapType).NotTo(Equal(model.GapVagueAction))
			}
		})
	})

	Describe("assisted mode", func() {
		It("still compiles when the delegate rejects every call", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error": {"message": "bad request", "type": "invalid_request_error"}}`))
			}))
			defer srv.Close()

			router := delegate.NewRouter(delegate.RouterOptions{EnableFast: true, EnableDeep: true})
			client, err := delegate.NewClient(delegate.Config{
				APIKey:  "test-key",
				BaseURL: srv.URL,
				Models:  delegate.Models{Fast: "gpt-4o-mini", Balanced: "gpt-4o", Deep: "o1"},
			}, router)
			Expect(err).NotTo(HaveOccurred())

			assisted := compiler.New().WithAssistant(delegate.NewAssistant(client))
			resp := assisted.Compile(ctx, compiler.Request{
				Text:         "fix 500 error on login page",
				IntentID:     4001,
				GeneratedFor: "claude_code",
			})

			Expect(resp.RequiresClarification).To(BeFalse())
			Expect(resp.Contract).NotTo(BeNil())
			Expect(resp.Contract.Title).To(Equal("Fix 500 error on"))
		})
	})

	Describe("determinism", func() {
		It("returns identical contracts for identical input", func() {
			req := compiler.Request{Text: "fix 500 error on login page", IntentID: 3001, GeneratedFor: "claude_code"}

			a := c.Compile(ctx, req)
			b := c.Compile(ctx, req)

			Expect(a.Contract).To(Equal(b.Contract))
			Expect(strings.Join(a.Contract.DefinitionOfDone, "\n")).To(
				Equal(strings.Join(b.Contract.DefinitionOfDone, "\n")))
		})
	})
})
