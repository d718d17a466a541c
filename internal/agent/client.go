// Package agent wraps the hosted model endpoints behind two operations:
// chat completion and audio transcription. Both are synchronous and
// single-attempt; there is no retry, backoff or circuit breaking.
package agent

import (
	openai "github.com/sashabaranov/go-openai"
)

// Client talks to an OpenAI-compatible API for both operations.
type Client struct {
	api          *openai.Client
	chatModel    string
	whisperModel string
}

// NewClient constructs the gateway. baseURL points at the hosted endpoint
// (the service also works against OpenAI-compatible proxies).
func NewClient(apiKey, baseURL, chatModel, whisperModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		chatModel:    chatModel,
		whisperModel: whisperModel,
	}
}
