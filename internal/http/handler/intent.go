package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"gandalf.app/compiler/common/id"
	"gandalf.app/compiler/common/logger"
	"gandalf.app/compiler/core/config"
	"gandalf.app/compiler/internal/compiler"
	"gandalf.app/compiler/internal/http/dto"
	"gandalf.app/compiler/internal/model"
	"gandalf.app/compiler/internal/session"
)

type IntentHandler struct {
	compiler *compiler.Compiler
	sessions session.Store
	executor config.CompilerConfig
}

func NewIntentHandler(comp *compiler.Compiler, sessions session.Store, executor config.CompilerConfig) *IntentHandler {
	return &IntentHandler{
		compiler: comp,
		sessions: sessions,
		executor: executor,
	}
}

// Compile handles POST /api/v1/intent. The response either carries a
// contract or up to three clarifying questions whose ids are valid for one
// resubmission round.
func (h *IntentHandler) Compile(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CompileIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid intent request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intentID := id.New()
	generatedFor := h.executor.ExecutorName
	if req.GeneratedFor != nil && *req.GeneratedFor != "" {
		generatedFor = *req.GeneratedFor
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IntentID:     logger.Ptr(intentID),
		GeneratedFor: logger.Ptr(generatedFor),
		Component:    "compiler.http.intent",
	})

	sc := logger.StartSpan(ctx, "compiler.compile")
	defer sc.End()
	ctx = sc.Context()

	resp := h.compiler.Compile(ctx, compiler.Request{
		Text:         req.Text,
		IntentID:     intentID,
		GeneratedFor: generatedFor,
		ExecutorVer:  h.executor.ExecutorVersion,
	})

	if resp.RequiresClarification {
		h.storeRound(ctx, intentID, req.Text, generatedFor, resp)
	}

	c.JSON(http.StatusOK, resp)
}

// Clarify handles POST /api/v1/intent/clarify. Answered questions are folded
// back into the pipeline; unanswered ones resolve to their defaults.
func (h *IntentHandler) Clarify(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ClarifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid clarify request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		IntentID:  logger.Ptr(req.IntentID),
		Component: "compiler.http.clarify",
	})

	round, err := h.sessions.Get(ctx, req.IntentID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending clarification for this intent"})
			return
		}
		slog.ErrorContext(ctx, "failed to load pending round", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pending clarification"})
		return
	}

	sc := logger.StartSpanFromTraceID(ctx, round.TraceID, "compiler.clarify")
	defer sc.End()
	ctx = sc.Context()

	answers, err := h.collectAnswers(round, req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := h.compiler.Resubmit(ctx, compiler.Request{
		Text:         round.Text,
		IntentID:     round.IntentID,
		GeneratedFor: round.GeneratedFor,
		ExecutorVer:  h.executor.ExecutorVersion,
	}, answers)

	if resp.RequiresClarification {
		// More blocking gaps surfaced than the first round could ask about.
		h.storeRound(ctx, round.IntentID, round.Text, round.GeneratedFor, resp)
	} else if err := h.sessions.Delete(ctx, round.IntentID); err != nil {
		slog.WarnContext(ctx, "failed to delete pending round", "error", err)
	}

	c.JSON(http.StatusOK, resp)
}

// collectAnswers pairs submitted answers with the asked questions and fills
// the remainder from defaults. Unknown question ids are rejected.
func (h *IntentHandler) collectAnswers(round session.PendingRound, submitted []dto.ClarifyAnswer) ([]compiler.Answer, error) {
	answered := make(map[int64]string, len(submitted))
	for _, a := range submitted {
		if _, ok := round.Question(a.QuestionID); !ok {
			return nil, errors.New("unknown question_id")
		}
		answered[a.QuestionID] = a.Answer
	}

	answers := make([]compiler.Answer, 0, len(round.Questions))
	for _, q := range round.Questions {
		if raw, ok := answered[q.QuestionID]; ok {
			answers = append(answers, compiler.Answer{
				QuestionID: q.QuestionID,
				GapType:    q.GapType,
				Value:      q.ResolveAnswer(raw),
			})
			continue
		}
		answers = append(answers, compiler.Answer{
			QuestionID: q.QuestionID,
			GapType:    q.GapType,
			Value:      q.DefaultAnswer(),
			Defaulted:  true,
		})
	}
	return answers, nil
}

// storeRound assigns question ids and persists the round so a later clarify
// call can be matched back. Storage failure downgrades the round to
// stateless; the response still goes out.
func (h *IntentHandler) storeRound(ctx context.Context, intentID int64, text, generatedFor string, resp *model.CompileResponse) {
	questions := make([]session.PendingQuestion, 0, len(resp.Clarifications.Asked))
	for i := range resp.Clarifications.Asked {
		asked := &resp.Clarifications.Asked[i]
		asked.ID = id.New()
		questions = append(questions, session.PendingQuestion{
			QuestionID:    asked.ID,
			GapType:       asked.GapType,
			Question:      asked.Question,
			Options:       asked.Options,
			DefaultOption: asked.DefaultOption,
		})
	}

	round := session.PendingRound{
		IntentID:     intentID,
		Text:         text,
		GeneratedFor: generatedFor,
		Questions:    questions,
	}
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		round.TraceID = spanCtx.TraceID().String()
	}

	if err := h.sessions.Put(ctx, round); err != nil {
		slog.WarnContext(ctx, "failed to store pending round", "error", err)
	}
}
