// Package completion wraps the hosted chat-completion backend behind a
// one-shot client: one prompt in, one reply out, no retries.
package completion

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrCompletionFailed wraps every backend failure: transport errors,
// timeouts, rate limits and malformed responses alike. The cause stays in
// the wrapped error for logs; it is never shown to the end user.
var ErrCompletionFailed = errors.New("completion failed")

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client for the given API key. baseURL overrides
// the default endpoint when non-empty; model falls back to gpt-3.5-turbo.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices in response", ErrCompletionFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
