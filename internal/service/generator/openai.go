package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ChatClient abstracts the upstream chat-completion API so tests can
// substitute a mock.
type ChatClient interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error)
}

// OpenAIClient implements ChatClient using OpenAI's official Go SDK.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client for the given API key and optional base
// URL override. An empty key yields nil: callers treat that as the
// credential-not-configured case.
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client}
}

// Complete sends the assembled request and returns the first choice's
// message text.
func (o *OpenAIClient) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = "Unknown error"
			}
			return "", &UpstreamError{Message: msg}
		}
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Message: "no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}
