package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrEmptyReply is returned when the model answers with no usable text.
var ErrEmptyReply = errors.New("empty completion reply")

// Client talks to any OpenAI-compatible chat completion endpoint.
type Client struct {
	client *openai.Client
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("missing AI base URL")
	}

	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimSuffix(baseURL, "/") + "/v1/"),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := openai.NewClient(opts...)

	return &Client{client: &client}, nil
}

// Complete sends one system and one user message and returns the first
// choice with surrounding whitespace removed.
func (c *Client) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion with %s: %w", model, err)
	}

	for _, choice := range resp.Choices {
		if reply := strings.TrimSpace(choice.Message.Content); reply != "" {
			return reply, nil
		}
	}
	return "", fmt.Errorf("chat completion with %s: %w", model, ErrEmptyReply)
}
