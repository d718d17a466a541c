// Package consultation routes user actions across the prompt templates, the
// model gateway and the session store.
package consultation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"davis-triage/internal/prompt"
	"davis-triage/internal/recording"
	"davis-triage/internal/session"
	"davis-triage/internal/triage"
)

// Completer defines the chat-completion side of the model gateway.
// Declared here to decouple from the concrete client implementation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Transcriber defines the speech-to-text side of the model gateway.
type Transcriber interface {
	Transcribe(ctx context.Context, wavData []byte, language string) (string, error)
}

// Notifier forwards an urgent consultation to an on-call doctor. Optional.
type Notifier interface {
	NotifyUrgent(ctx context.Context, entry session.ConsultationEntry) error
}

var (
	// ErrNoSymptoms rejects doctor actions issued before any symptom
	// record exists. The model gateway is not called in that case.
	ErrNoSymptoms = errors.New("no symptoms recorded yet")

	// ErrEmptySymptoms rejects blank submissions.
	ErrEmptySymptoms = errors.New("symptom text is empty")

	// ErrInvalidAudio rejects uploads that do not decode as 16-bit PCM
	// mono WAV.
	ErrInvalidAudio = errors.New("invalid audio payload")
)

// timestampLayout is the human-readable form embedded into prompts and shown
// in the history.
const timestampLayout = "2006-01-02 15:04:05"

// Result is the outcome of a patient analysis.
type Result struct {
	Analysis  string      `json:"analysis"`
	Urgent    bool        `json:"urgent"`
	Code      triage.Code `json:"code"`
	Timestamp time.Time   `json:"timestamp"`
}

type Service struct {
	llm       Completer
	stt       Transcriber
	notifier  Notifier
	language  string
	audioPath string
}

// NewService wires the router. notifier may be nil when no doctor
// notification channel is configured.
func NewService(llm Completer, stt Transcriber, notifier Notifier, language, audioPath string) *Service {
	return &Service{
		llm:       llm,
		stt:       stt,
		notifier:  notifier,
		language:  language,
		audioPath: audioPath,
	}
}

// SubmitSymptoms runs the patient path: record the symptom text, render the
// analysis template, call the model and append the exchange to the history.
// The symptom record is stored before the completion call, matching the
// submit-then-analyze flow of the form; a failed completion leaves analysis
// and history untouched.
func (s *Service) SubmitSymptoms(ctx context.Context, st *session.State, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptySymptoms
	}

	now := time.Now()
	st.SetSymptoms(text, now)

	rendered, err := prompt.Render(prompt.TemplatePatientAnalysis, map[string]string{
		"symptoms":  text,
		"timestamp": now.Format(timestampLayout),
	})
	if err != nil {
		return nil, err
	}

	analysis, err := s.llm.Complete(ctx, rendered)
	if err != nil {
		return nil, err
	}

	st.SetAnalysis(analysis)
	entry := session.ConsultationEntry{
		Timestamp: time.Now(),
		Role:      session.RolePatient,
		Symptoms:  text,
		Analysis:  analysis,
	}
	st.AppendHistory(entry)

	res := &Result{
		Analysis:  analysis,
		Urgent:    triage.IsUrgent(analysis),
		Code:      triage.Classify(analysis),
		Timestamp: entry.Timestamp,
	}

	if res.Urgent && s.notifier != nil {
		// Best effort, off the request path.
		go func(e session.ConsultationEntry) {
			if err := s.notifier.NotifyUrgent(context.Background(), e); err != nil {
				log.Printf("urgent notification failed: %v", err)
			}
		}(entry)
	}

	return res, nil
}

// SubmitRecording feeds an uploaded WAV clip through the recording
// controller (trim, artifact write, transcription) and then through the
// patient path. On a transcription failure the prior symptom record is left
// unchanged and the controller ends back in idle.
func (s *Service) SubmitRecording(ctx context.Context, st *session.State, wavData []byte) (string, *Result, error) {
	samples, _, err := recording.DecodeWAV(wavData)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidAudio, err)
	}

	ctrl := recording.NewController(recording.NewBufferedDevice(samples), s.stt, s.language, s.audioPath)
	if err := ctrl.Start(); err != nil {
		return "", nil, err
	}
	text, err := ctrl.Stop(ctx)
	if err != nil {
		return "", nil, err
	}

	res, err := s.SubmitSymptoms(ctx, st, text)
	if err != nil {
		return text, nil, err
	}
	return text, res, nil
}

// FollowUpQuestions asks the model for professional follow-up questions
// about the recorded symptoms.
func (s *Service) FollowUpQuestions(ctx context.Context, st *session.State) (string, error) {
	return s.doctorQuery(ctx, st, prompt.TemplateDoctorQuestions)
}

// EmergencyCheck runs the rapid emergency-protocol assessment over the
// recorded symptoms.
func (s *Service) EmergencyCheck(ctx context.Context, st *session.State) (string, error) {
	return s.doctorQuery(ctx, st, prompt.TemplateEmergencyProtocol)
}

func (s *Service) doctorQuery(ctx context.Context, st *session.State, template string) (string, error) {
	rec := st.Symptoms()
	if rec == nil {
		return "", ErrNoSymptoms
	}

	rendered, err := prompt.Render(template, map[string]string{"symptoms": rec.Text})
	if err != nil {
		return "", err
	}

	out, err := s.llm.Complete(ctx, rendered)
	if err != nil {
		return "", err
	}

	// Doctor-initiated queries are part of the consultation record too.
	st.AppendHistory(session.ConsultationEntry{
		Timestamp: time.Now(),
		Role:      session.RoleDoctor,
		Symptoms:  rec.Text,
		Analysis:  out,
	})
	return out, nil
}
