package delegate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Models maps each tier to a concrete model id.
type Models struct {
	Fast     string
	Balanced string
	Deep     string
}

// Config holds the delegate API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Models  Models
}

// Prompt is one structured-output call. Schema must be a JSON schema the
// response is validated against server side.
type Prompt struct {
	System     string
	User       string
	SchemaName string
	Schema     any
	Complexity int
}

// Usage reports what a completed call consumed.
type Usage struct {
	Tier             Tier
	Model            string
	PromptTokens     int
	CompletionTokens int
	EstimatedCost    float64
}

// Client executes structured-output calls, routing each stage to a tier and
// retrying once on the fallback tier for transient failures.
type Client struct {
	openai openai.Client
	router *Router
	models Models
}

const maxAttempts = 2

func NewClient(cfg Config, router *Router) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		openai: openai.NewClient(opts...),
		router: router,
		models: cfg.Models,
	}, nil
}

// Complete runs one call for the given stage and unmarshals the structured
// response into result.
func (c *Client) Complete(ctx context.Context, stage Stage, prompt Prompt, result any) (*Usage, error) {
	tier := c.router.Select(stage, prompt.Complexity)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		usage, err := c.call(ctx, tier, prompt, result)
		if err == nil {
			return usage, nil
		}
		lastErr = err
		if !isRetryable(ctx, err) {
			break
		}
		tier = c.router.Fallback(tier)
		slog.WarnContext(ctx, "delegate call failed, retrying on fallback tier",
			"stage", stage,
			"attempt", attempt,
			"fallback_tier", tier)
	}
	return nil, fmt.Errorf("delegate %s: %w", stage, lastErr)
}

func (c *Client) call(ctx context.Context, tier Tier, prompt Prompt, result any) (*Usage, error) {
	cfg := c.router.Config(tier)

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: c.modelFor(tier),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens:   openai.Int(int64(cfg.MaxTokens)),
		Temperature: openai.Float(cfg.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        prompt.SchemaName,
					Description: openai.String("Structured response schema"),
					Schema:      prompt.Schema,
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(callCtx, params)
	if err != nil {
		return nil, fmt.Errorf("delegate chat: %w", err)
	}

	slog.DebugContext(ctx, "delegate call completed",
		"tier", tier,
		"model", c.modelFor(tier),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), result); err != nil {
		return nil, fmt.Errorf("unmarshal delegate response: %w", err)
	}

	return &Usage{
		Tier:             tier,
		Model:            c.modelFor(tier),
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		EstimatedCost:    c.router.EstimateCost(tier, int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens)),
	}, nil
}

func (c *Client) modelFor(tier Tier) string {
	switch tier {
	case TierFast:
		return c.models.Fast
	case TierDeep:
		return c.models.Deep
	default:
		return c.models.Balanced
	}
}

// GenerateSchema reflects a Go type into a strict JSON schema for
// structured outputs.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func isRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return true
		case apiErr.StatusCode >= 500:
			return true
		default:
			slog.ErrorContext(ctx, "delegate client error, not retryable",
				"status_code", apiErr.StatusCode,
				"error_type", apiErr.Type,
				"error_code", apiErr.Code)
			return false
		}
	}

	// Network errors with no API response are generally transient.
	return true
}
