// Package recording coordinates audio capture and its handoff to
// transcription.
package recording

import (
	"context"
	"fmt"
	"os"
	"sync"
)

const (
	// SampleRate is the fixed capture rate, mono.
	SampleRate = 44100
	// MaxClipSeconds caps one recording.
	MaxClipSeconds = 60
)

// Phase is the controller's state. Transitions are guarded explicitly;
// calls out of order fail with TransitionError instead of silently no-op'ing.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseRecording    Phase = "recording"
	PhaseTranscribing Phase = "transcribing"
)

// TransitionError reports an operation invoked in the wrong phase.
type TransitionError struct {
	Op   string
	From Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("recording: cannot %s from %s", e.Op, e.From)
}

// CaptureError wraps an audio device failure.
type CaptureError struct {
	Cause error
}

func (e *CaptureError) Error() string { return fmt.Sprintf("audio capture failed: %v", e.Cause) }
func (e *CaptureError) Unwrap() error { return e.Cause }

// ErrEmptyRecording is returned when a stopped clip holds no audible samples.
var ErrEmptyRecording = fmt.Errorf("recording: clip is empty")

// CaptureDevice is the OS-level (or remote) audio source. Start begins a
// continuous capture; Stop halts it and returns everything captured so far.
type CaptureDevice interface {
	Start(sampleRate, maxSamples int) error
	Stop() ([]int16, error)
}

// Transcriber converts a finished WAV clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte, language string) (string, error)
}

// Controller runs one clip through capture, trimming and transcription.
type Controller struct {
	mu          sync.Mutex
	phase       Phase
	device      CaptureDevice
	transcriber Transcriber
	language    string
	audioPath   string
}

// NewController builds an idle controller. audioPath is the fixed WAV file
// the trimmed clip is written to before transcription.
func NewController(device CaptureDevice, transcriber Transcriber, language, audioPath string) *Controller {
	return &Controller{
		phase:       PhaseIdle,
		device:      device,
		transcriber: transcriber,
		language:    language,
		audioPath:   audioPath,
	}
}

// Phase returns the current state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start begins capture. Valid only from Idle. A device failure aborts back
// to Idle with a CaptureError.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseIdle {
		return &TransitionError{Op: "start", From: c.phase}
	}
	if err := c.device.Start(SampleRate, SampleRate*MaxClipSeconds); err != nil {
		return &CaptureError{Cause: err}
	}
	c.phase = PhaseRecording
	return nil
}

// Stop halts capture, trims trailing silence, writes the WAV artifact and
// hands the clip to the transcriber. Valid only from Recording; the
// controller is back in Idle when Stop returns, whatever the outcome.
// On transcription failure no partial text is returned.
func (c *Controller) Stop(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.phase != PhaseRecording {
		from := c.phase
		c.mu.Unlock()
		return "", &TransitionError{Op: "stop", From: from}
	}

	samples, err := c.device.Stop()
	if err != nil {
		c.phase = PhaseIdle
		c.mu.Unlock()
		return "", &CaptureError{Cause: err}
	}

	samples = TrimSilence(samples)
	if len(samples) == 0 {
		c.phase = PhaseIdle
		c.mu.Unlock()
		return "", ErrEmptyRecording
	}
	c.phase = PhaseTranscribing
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.phase = PhaseIdle
		c.mu.Unlock()
	}()

	wavData := EncodeWAV(samples, SampleRate)
	if err := os.WriteFile(c.audioPath, wavData, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", c.audioPath, err)
	}

	return c.transcriber.Transcribe(ctx, wavData, c.language)
}

// TrimSilence drops everything after the last nonzero-amplitude sample.
// Idempotent: trimming an already-trimmed buffer returns it unchanged. A
// clip whose final true sample is exactly zero is over-trimmed; that edge
// case is accepted, this is not voice-activity detection.
func TrimSilence(samples []int16) []int16 {
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i] != 0 {
			return samples[:i+1]
		}
	}
	return nil
}

// BufferedDevice is a CaptureDevice backed by samples captured elsewhere,
// typically a clip recorded in the browser and uploaded. Start is a no-op
// and Stop yields the buffer, so uploaded audio flows through the same
// controller state machine as a local device would.
type BufferedDevice struct {
	samples    []int16
	maxSamples int
}

func NewBufferedDevice(samples []int16) *BufferedDevice {
	return &BufferedDevice{samples: samples}
}

func (d *BufferedDevice) Start(sampleRate, maxSamples int) error {
	d.maxSamples = maxSamples
	return nil
}

func (d *BufferedDevice) Stop() ([]int16, error) {
	s := d.samples
	// Enforce the clip cap that a live device would.
	if d.maxSamples > 0 && len(s) > d.maxSamples {
		s = s[:d.maxSamples]
	}
	return s, nil
}
