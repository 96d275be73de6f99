// Package compiler wires the pipeline stages together: analyze, detect gaps,
// then either ask or generate. Each request is independent; no state crosses
// invocations, so concurrent use needs no synchronization.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"gandalf.app/compiler/internal/clarify"
	"gandalf.app/compiler/internal/contract"
	"gandalf.app/compiler/internal/delegate"
	"gandalf.app/compiler/internal/efficiency"
	"gandalf.app/compiler/internal/gap"
	"gandalf.app/compiler/internal/intent"
	"gandalf.app/compiler/internal/model"
)

// Request is a single compile invocation.
type Request struct {
	Text         string
	IntentID     int64
	GeneratedFor string
	ExecutorVer  string
}

func (r Request) executor() model.ExecutorInfo {
	version := r.ExecutorVer
	if version == "" {
		version = "1.0"
	}
	return model.ExecutorInfo{Name: r.GeneratedFor, Version: version}
}

// Answer is a resolved clarification from a prior round, mapped back to the
// gap type that raised it. The mapping is owned by the caller's session
// store; the compiler only consumes it.
type Answer struct {
	QuestionID int64
	GapType    model.GapType
	Value      string
	// Defaulted marks answers filled from the question's stated default
	// rather than by the user.
	Defaulted bool
}

type Compiler struct {
	analyzer  *intent.Analyzer
	detector  *gap.Detector
	clarifier *clarify.Generator
	contracts *contract.Generator
	assistant *delegate.Assistant
}

func New() *Compiler {
	return &Compiler{
		analyzer:  intent.NewAnalyzer(),
		detector:  gap.NewDetector(),
		clarifier: clarify.NewGenerator(),
		contracts: contract.NewGenerator(),
	}
}

// WithAssistant enables the delegated format check on generated contracts
// and keyword tagging of compile logs. Both are advisory; a failing or
// unavailable delegate never blocks the response.
func (c *Compiler) WithAssistant(a *delegate.Assistant) *Compiler {
	c.assistant = a
	return c
}

// Compile runs the full pipeline on raw text. It never fails: malformed or
// empty input flows down the incomplete path and comes back as questions.
func (c *Compiler) Compile(ctx context.Context, req Request) *model.CompileResponse {
	return c.run(ctx, req, nil)
}

// Resubmit re-runs the pipeline treating each answered gap type as resolved
// and folding the answers into contract generation as authoritative
// overrides.
func (c *Compiler) Resubmit(ctx context.Context, req Request, answers []Answer) *model.CompileResponse {
	return c.run(ctx, req, answers)
}

func (c *Compiler) run(ctx context.Context, req Request, answers []Answer) *model.CompileResponse {
	start := time.Now()

	resolved := make(gap.Resolved, len(answers))
	overrides := make(contract.Overrides, len(answers))
	for _, a := range answers {
		resolved[a.GapType] = true
		if a.Value != "" {
			overrides[a.GapType] = a.Value
		}
	}

	analysis := c.analyzer.Analyze(req.Text)
	gaps := c.detector.DetectWithResolved(req.Text, analysis, resolved)

	slog.DebugContext(ctx, "intent analyzed",
		"intent_id", req.IntentID,
		"intent_type", analysis.IntentType,
		"clarity", analysis.Clarity,
		"blocking_gaps", len(gaps.BlockingGaps))

	if gaps.HasBlockingGaps {
		return c.clarificationResponse(ctx, req, analysis, gaps, start)
	}
	return c.contractResponse(ctx, req, analysis, overrides, answers, start)
}

func (c *Compiler) clarificationResponse(ctx context.Context, req Request, analysis model.IntentAnalysis, gaps model.GapAnalysis, start time.Time) *model.CompileResponse {
	questions := c.clarifier.Generate(req.Text, analysis, gaps)
	set := c.clarifier.Render(questions)

	metrics := efficiency.WithMetadata(req.Text, clarify.RenderText(set))

	slog.InfoContext(ctx, "clarification required",
		"intent_id", req.IntentID,
		"question_count", len(set.Asked))

	return &model.CompileResponse{
		RequiresClarification: true,
		Clarifications:        set,
		Telemetry: model.Telemetry{
			IntentID:           req.IntentID,
			CreatedAt:          time.Now().UTC(),
			Executor:           req.executor(),
			ElapsedMs:          time.Since(start).Milliseconds(),
			UserQuestionsCount: len(set.Asked),
			ExecutionResult:    model.ResultPendingClarification,
			Efficiency:         &metrics,
		},
	}
}

func (c *Compiler) contractResponse(ctx context.Context, req Request, analysis model.IntentAnalysis, overrides contract.Overrides, answers []Answer, start time.Time) *model.CompileResponse {
	ctc := c.contracts.GenerateWithOverrides(req.Text, analysis, overrides)
	rendered := contract.Render(ctc)
	metrics := efficiency.WithMetadata(req.Text, rendered)

	if c.assistant != nil {
		verdict, _, err := c.assistant.ValidateContract(ctx, rendered, analysis.Complexity)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "delegate format check unavailable",
				"intent_id", req.IntentID, "error", err)
		case !verdict.Valid:
			slog.WarnContext(ctx, "delegate flagged contract format",
				"intent_id", req.IntentID, "problems", verdict.Problems)
		}
	}

	// A contract without a prior question round still resolves its
	// non-blocking gaps silently, so "default" is the first-pass value too.
	resolvedBy := model.ResolvedByDefault()
	for _, a := range answers {
		if !a.Defaulted {
			resolvedBy = model.ResolvedByUser()
			break
		}
	}

	logAttrs := []any{
		"intent_id", req.IntentID,
		"title", ctc.Title,
		"efficiency_pct", metrics.EfficiencyPercentage,
	}
	if c.assistant != nil {
		if keywords, _, err := c.assistant.ExtractKeywords(ctx, req.Text); err != nil {
			slog.DebugContext(ctx, "delegate keyword extraction unavailable",
				"intent_id", req.IntentID, "error", err)
		} else if len(keywords) > 0 {
			logAttrs = append(logAttrs, "keywords", keywords)
		}
	}
	slog.InfoContext(ctx, "contract compiled", logAttrs...)

	return &model.CompileResponse{
		Contract:       &ctc,
		Clarifications: model.ClarificationSet{Asked: []model.AskedQuestion{}, ResolvedBy: resolvedBy},
		Telemetry: model.Telemetry{
			IntentID:           req.IntentID,
			CreatedAt:          time.Now().UTC(),
			Executor:           req.executor(),
			ElapsedMs:          time.Since(start).Milliseconds(),
			UserQuestionsCount: 0,
			ExecutionResult:    model.ResultUnknown,
			Efficiency:         &metrics,
		},
	}
}
