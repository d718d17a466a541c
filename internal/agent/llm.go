package agent

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	completionTemperature = 0.7
	completionMaxTokens   = 2000
)

// Complete sends the rendered prompt as a single user-role message and
// returns the model's free-text reply. Any failure comes back as a
// CompletionError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", &CompletionError{Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Cause: fmt.Errorf("empty response from model %s", c.chatModel)}
	}
	return resp.Choices[0].Message.Content, nil
}
