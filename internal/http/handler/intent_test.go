package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gandalf.app/compiler/core/config"
	"gandalf.app/compiler/internal/compiler"
	"gandalf.app/compiler/internal/http/handler"
	"gandalf.app/compiler/internal/session"
)

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var _ = Describe("IntentHandler", func() {
	var (
		router   *gin.Engine
		sessions *session.MemoryStore
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		sessions = session.NewMemoryStore(30 * time.Minute)

		h := handler.NewIntentHandler(compiler.New(), sessions, config.CompilerConfig{
			ExecutorName:    "claude_code",
			ExecutorVersion: "1.0",
		})
		router.POST("/intent", h.Compile)
		router.POST("/intent/clarify", h.Clarify)
	})

	Describe("POST /intent", func() {
		It("returns a contract for a clear request", func() {
			w := postJSON(router, "/intent", map[string]string{
				"text": "fix 500 error on login page",
			})

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveKey("ctc"))
			Expect(resp).NotTo(HaveKey("requires_clarification"))

			ctc := resp["ctc"].(map[string]any)
			Expect(ctc["title"]).To(Equal("Fix 500 error on"))

			clarifications := resp["clarifications"].(map[string]any)
			Expect(clarifications["asked"]).To(BeEmpty())
			Expect(clarifications["resolved_by"]).To(Equal("default"))

			telemetry := resp["telemetry"].(map[string]any)
			executor := telemetry["executor"].(map[string]any)
			Expect(executor["name"]).To(Equal("claude_code"))
			Expect(executor["version"]).To(Equal("1.0"))
		})

		It("honors the generated_for override", func() {
			w := postJSON(router, "/intent", map[string]string{
				"text":          "fix 500 error on login page",
				"generated_for": "cursor",
			})

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			executor := resp["telemetry"].(map[string]any)["executor"].(map[string]any)
			Expect(executor["name"]).To(Equal("cursor"))
		})

		It("returns questions with ids for an ambiguous request", func() {
			w := postJSON(router, "/intent", map[string]string{
				"text": "add export button",
			})

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["requires_clarification"]).To(BeTrue())

			asked := resp["clarifications"].(map[string]any)["asked"].([]any)
			Expect(asked).To(HaveLen(1))
			question := asked[0].(map[string]any)
			Expect(question["question_id"]).To(BeAssignableToTypeOf(""))
			Expect(question["options"]).To(HaveLen(3))
		})

		It("returns 400 on a missing text field", func() {
			w := postJSON(router, "/intent", map[string]string{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on malformed JSON", func() {
			w := postJSON(router, "/intent", `{"text": `)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /intent/clarify", func() {
		// startRound compiles an ambiguous request and returns the stored
		// intent and question ids from the response body.
		startRound := func() (intentID, questionID string) {
			w := postJSON(router, "/intent", map[string]string{"text": "add export button"})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			intentID = resp["telemetry"].(map[string]any)["intent_id"].(string)
			asked := resp["clarifications"].(map[string]any)["asked"].([]any)
			questionID = asked[0].(map[string]any)["question_id"].(string)
			return intentID, questionID
		}

		It("compiles a contract from an answered round", func() {
			intentID, questionID := startRound()

			w := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": intentID,
				"answers": []map[string]string{
					{"question_id": questionID, "answer": "B"},
				},
			})

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveKey("ctc"))

			ctc := resp["ctc"].(map[string]any)
			constraints := ctc["constraints"].([]any)
			Expect(constraints[0]).To(Equal("Use format: PDF"))

			clarifications := resp["clarifications"].(map[string]any)
			Expect(clarifications["resolved_by"]).To(Equal("user"))
		})

		It("deletes the round once it resolves", func() {
			intentID, questionID := startRound()

			first := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": intentID,
				"answers":   []map[string]string{{"question_id": questionID, "answer": "A"}},
			})
			Expect(first.Code).To(Equal(http.StatusOK))

			second := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": intentID,
				"answers":   []map[string]string{{"question_id": questionID, "answer": "A"}},
			})
			Expect(second.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 404 for an unknown intent", func() {
			w := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": "123456789",
				"answers":   []map[string]string{{"question_id": "1", "answer": "A"}},
			})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("rejects an answer to a question that was never asked", func() {
			intentID, _ := startRound()

			w := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": intentID,
				"answers":   []map[string]string{{"question_id": "123456789", "answer": "A"}},
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("unknown question_id"))

			// The round survives a rejected submission.
			var stored session.PendingRound
			var intentInt int64
			_, err := fmt.Sscan(intentID, &intentInt)
			Expect(err).NotTo(HaveOccurred())
			stored, err = sessions.Get(context.Background(), intentInt)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Text).To(Equal("add export button"))
		})

		It("returns 400 on a missing answers field", func() {
			w := postJSON(router, "/intent/clarify", map[string]any{
				"intent_id": "42",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
