package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"

	"sitesmith/pkg/domain"
)

const (
	DefaultModel           = "o3-mini"
	DefaultReasoningEffort = "high"
)

// Config is the model configuration applied to every completion call.
type Config struct {
	Model           string
	ReasoningEffort string
	JSONMode        bool
}

type client struct {
	api *openai.Client
	cfg Config
}

func NewClient(token string, cfg Config) (*client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.ReasoningEffort == "" {
		cfg.ReasoningEffort = DefaultReasoningEffort
	}
	return &client{
		api: openai.NewClient(token),
		cfg: cfg,
	}, nil
}

// Complete performs a single chat-completion call and returns the raw reply
// text. There is no retry; failures surface to the caller as
// domain.UpstreamError or domain.TransportError.
func (c *client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	apiMessages := lo.FilterMap(messages, func(m domain.ChatMessage, _ int) (openai.ChatCompletionMessage, bool) {
		if strings.TrimSpace(m.Content) == "" {
			return openai.ChatCompletionMessage{}, false
		}
		return openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}, true
	})

	req := openai.ChatCompletionRequest{
		Model:           c.cfg.Model,
		Messages:        apiMessages,
		ReasoningEffort: c.cfg.ReasoningEffort,
	}
	if c.cfg.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", normalizeError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &domain.UpstreamError{StatusCode: 200, Body: "no choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

func normalizeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.UpstreamError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}

	return &domain.TransportError{Err: err}
}
