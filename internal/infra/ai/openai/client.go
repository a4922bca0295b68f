package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/infra/ai/prompt"
)

const (
	defaultModel     = "gpt-4o"
	defaultMaxTokens = 4000
)

type Client struct {
	*openai.Client
	model       string
	maxTokens   int
	temperature float32
}

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	c := &Client{
		Client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	return c
}

func (c *Client) Model() string { return c.model }

// Analyze asks for the JSON analysis of one project.
func (c *Client) Analyze(ctx context.Context, facts domai.Facts) (string, error) {
	items := facts.Checklist
	if len(items) == 0 {
		items = checklist.All()
	}
	req := c.request(prompt.GetSystemPrompt(items), prompt.GetUserPrompt(facts))
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	return c.complete(ctx, req)
}

// DraftReport asks for the report text.
func (c *Client) DraftReport(ctx context.Context, facts domai.Facts, analysis inspections.Analysis) (string, error) {
	req := c.request(prompt.GetDraftSystemPrompt(), prompt.GetDraftUserPrompt(facts, analysis))
	return c.complete(ctx, req)
}

func (c *Client) request(system, user string) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if isReasoning(c.model) {
		req.MaxCompletionTokens = c.maxTokens
	} else {
		req.MaxTokens = c.maxTokens
		req.Temperature = c.temperature
	}
	return req
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", domai.ErrQuotaExceeded, apiErr.Message)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoning(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}
