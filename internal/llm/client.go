// Package llm is the single point of integration with the generative
// backend. Prompt requests are assembled as role-tagged messages by the
// callers and rendered to the wire format here.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"scholar-ai/internal/apperr"
	"scholar-ai/internal/config"
)

// Message is one role-tagged entry of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: "system", Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: "user", Content: content}
}

// Client wraps the OpenAI API for chat completions and transcription.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a gateway client from config. The API key is required.
func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", apperr.ErrConfiguration)
	}
	return &Client{
		api:     openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}, nil
}

// Chat sends one completion request and returns the raw response text.
// No retry, no streaming; failures surface as integration errors and
// deadline hits as timeout errors.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    renderMessages(messages),
		Temperature: openai.Float(0.2),
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapCallError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion response had no choices", apperr.ErrFormat)
	}
	return resp.Choices[0].Message.Content, nil
}

func renderMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func wrapCallError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s exceeded deadline", apperr.ErrTimeout, op)
	}
	return fmt.Errorf("%w: %s failed: %v", apperr.ErrIntegration, op, err)
}
