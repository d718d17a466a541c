package agent

import "fmt"

// CompletionError wraps any transport or API failure of the chat-completion
// call. The caller decides how to render it; the session never terminates on
// a failed call.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string { return fmt.Sprintf("completion request failed: %v", e.Cause) }
func (e *CompletionError) Unwrap() error { return e.Cause }

// TranscriptionError wraps any transport or API failure of the
// speech-to-text call. No partial transcript is ever returned alongside it.
type TranscriptionError struct {
	Cause error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription request failed: %v", e.Cause)
}
func (e *TranscriptionError) Unwrap() error { return e.Cause }
