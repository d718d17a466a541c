package agent

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe sends a 16-bit PCM mono WAV clip to the speech-to-text service
// and returns the transcript. language is an ISO 639-1 hint; empty means
// auto-detect. On any failure a TranscriptionError is returned and the
// caller must not assume partial results.
func (c *Client) Transcribe(ctx context.Context, wavData []byte, language string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		Reader:   bytes.NewReader(wavData),
		FilePath: "user_voice.wav",
		Language: language,
	})
	if err != nil {
		return "", &TranscriptionError{Cause: err}
	}
	return resp.Text, nil
}
