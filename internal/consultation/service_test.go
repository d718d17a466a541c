package consultation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"davis-triage/internal/recording"
	"davis-triage/internal/session"
	"davis-triage/internal/triage"
)

type fakeCompleter struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, wavData []byte, language string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeNotifier struct {
	notified chan session.ConsultationEntry
}

func (f *fakeNotifier) NotifyUrgent(ctx context.Context, entry session.ConsultationEntry) error {
	f.notified <- entry
	return nil
}

func newTestService(t *testing.T, llm Completer, stt Transcriber, notifier Notifier) *Service {
	t.Helper()
	return NewService(llm, stt, notifier, "fa", filepath.Join(t.TempDir(), "user_voice.wav"))
}

func TestSubmitSymptomsPatientPath(t *testing.T) {
	llm := &fakeCompleter{reply: "🟢 قابل پیگیری با پزشک خانواده"}
	svc := newTestService(t, llm, &fakeTranscriber{}, nil)
	st := session.NewState()

	before := time.Now()
	res, err := svc.SubmitSymptoms(context.Background(), st, "severe chest pain and sweating")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if len(llm.prompts) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(llm.prompts))
	}
	if !strings.Contains(llm.prompts[0], "severe chest pain and sweating") {
		t.Fatalf("prompt does not contain the exact symptom phrase")
	}

	if res.Analysis != "🟢 قابل پیگیری با پزشک خانواده" {
		t.Fatalf("unexpected analysis: %q", res.Analysis)
	}
	if res.Urgent {
		t.Fatalf("green analysis flagged urgent")
	}
	if st.Analysis() != res.Analysis {
		t.Fatalf("analysis not stored in session")
	}

	hist := st.History()
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	e := hist[0]
	if e.Role != session.RolePatient {
		t.Fatalf("entry role = %q, want patient", e.Role)
	}
	if e.Symptoms != "severe chest pain and sweating" {
		t.Fatalf("entry symptoms = %q", e.Symptoms)
	}
	if e.Timestamp.Before(before) {
		t.Fatalf("entry timestamp %v earlier than submission time %v", e.Timestamp, before)
	}
}

func TestSubmitSymptomsEmpty(t *testing.T) {
	llm := &fakeCompleter{reply: "ok"}
	svc := newTestService(t, llm, &fakeTranscriber{}, nil)
	st := session.NewState()

	if _, err := svc.SubmitSymptoms(context.Background(), st, "   "); !errors.Is(err, ErrEmptySymptoms) {
		t.Fatalf("expected ErrEmptySymptoms, got %v", err)
	}
	if len(llm.prompts) != 0 {
		t.Fatalf("model must not be called for empty input")
	}
}

func TestSubmitSymptomsHistoryGrowsPerSubmission(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{reply: "ok"}, &fakeTranscriber{}, nil)
	st := session.NewState()

	const n = 4
	for i := 0; i < n; i++ {
		if _, err := svc.SubmitSymptoms(context.Background(), st, fmt.Sprintf("symptom %d", i)); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}
	if st.HistoryLen() != n {
		t.Fatalf("history length = %d, want %d", st.HistoryLen(), n)
	}
	st.ClearAll()
	if st.HistoryLen() != 0 {
		t.Fatalf("history not empty after clear")
	}
}

func TestCompletionFailureLeavesHistoryUntouched(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{err: fmt.Errorf("api down")}, &fakeTranscriber{}, nil)
	st := session.NewState()

	if _, err := svc.SubmitSymptoms(context.Background(), st, "fever"); err == nil {
		t.Fatalf("expected completion error")
	}
	// The symptom record is kept (it was submitted), but no analysis and
	// no history entry exist for the failed exchange.
	if st.Symptoms() == nil || st.Symptoms().Text != "fever" {
		t.Fatalf("symptom record should survive a failed analysis")
	}
	if st.Analysis() != "" || st.HistoryLen() != 0 {
		t.Fatalf("failed completion must not store analysis or history")
	}
}

func TestDoctorRejectedBeforeSymptoms(t *testing.T) {
	llm := &fakeCompleter{reply: "questions"}
	svc := newTestService(t, llm, &fakeTranscriber{}, nil)
	st := session.NewState()

	if _, err := svc.FollowUpQuestions(context.Background(), st); !errors.Is(err, ErrNoSymptoms) {
		t.Fatalf("expected ErrNoSymptoms, got %v", err)
	}
	if _, err := svc.EmergencyCheck(context.Background(), st); !errors.Is(err, ErrNoSymptoms) {
		t.Fatalf("expected ErrNoSymptoms, got %v", err)
	}
	if len(llm.prompts) != 0 {
		t.Fatalf("model gateway must not be called without symptoms")
	}
}

func TestDoctorQueriesAppendToHistory(t *testing.T) {
	llm := &fakeCompleter{reply: "analysis"}
	svc := newTestService(t, llm, &fakeTranscriber{}, nil)
	st := session.NewState()

	if _, err := svc.SubmitSymptoms(context.Background(), st, "dizziness"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	out, err := svc.FollowUpQuestions(context.Background(), st)
	if err != nil {
		t.Fatalf("follow-up failed: %v", err)
	}
	if out != "analysis" {
		t.Fatalf("unexpected follow-up output: %q", out)
	}
	if !strings.Contains(llm.prompts[1], "dizziness") {
		t.Fatalf("doctor prompt does not contain recorded symptoms")
	}

	hist := st.History()
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[1].Role != session.RoleDoctor {
		t.Fatalf("doctor query entry role = %q", hist[1].Role)
	}
}

func TestUrgentAnalysisNotifiesDoctor(t *testing.T) {
	notifier := &fakeNotifier{notified: make(chan session.ConsultationEntry, 1)}
	svc := newTestService(t, &fakeCompleter{reply: "🔴 فوریت بحرانی"}, &fakeTranscriber{}, notifier)
	st := session.NewState()

	res, err := svc.SubmitSymptoms(context.Background(), st, "chest pain")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !res.Urgent || res.Code != triage.CodeRed {
		t.Fatalf("expected urgent red result, got urgent=%v code=%s", res.Urgent, res.Code)
	}

	select {
	case e := <-notifier.notified:
		if e.Symptoms != "chest pain" {
			t.Fatalf("notified entry symptoms = %q", e.Symptoms)
		}
	case <-time.After(time.Second):
		t.Fatalf("urgent notification never sent")
	}
}

func TestSubmitRecordingSuccess(t *testing.T) {
	llm := &fakeCompleter{reply: "ok"}
	svc := newTestService(t, llm, &fakeTranscriber{text: "سردرد شدید"}, nil)
	st := session.NewState()

	wav := recording.EncodeWAV([]int16{4, 8, 15, 0, 0}, recording.SampleRate)
	text, res, err := svc.SubmitRecording(context.Background(), st, wav)
	if err != nil {
		t.Fatalf("recording failed: %v", err)
	}
	if text != "سردرد شدید" {
		t.Fatalf("unexpected transcript: %q", text)
	}
	if res == nil || res.Analysis != "ok" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if st.Symptoms() == nil || st.Symptoms().Text != "سردرد شدید" {
		t.Fatalf("transcript not stored as symptom record")
	}
	if !strings.Contains(llm.prompts[0], "سردرد شدید") {
		t.Fatalf("analysis prompt does not contain the transcript")
	}
}

func TestTranscriptionFailureLeavesSymptomsUnchanged(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{reply: "ok"}, &fakeTranscriber{err: fmt.Errorf("network down")}, nil)
	st := session.NewState()
	st.SetSymptoms("prior symptoms", time.Now())

	wav := recording.EncodeWAV([]int16{1, 2, 3}, recording.SampleRate)
	_, _, err := svc.SubmitRecording(context.Background(), st, wav)
	if err == nil {
		t.Fatalf("expected transcription error")
	}
	if st.Symptoms().Text != "prior symptoms" {
		t.Fatalf("symptom record changed after failed transcription: %q", st.Symptoms().Text)
	}
	if st.HistoryLen() != 0 {
		t.Fatalf("failed transcription must not append history")
	}
}

func TestSubmitRecordingRejectsBadPayload(t *testing.T) {
	svc := newTestService(t, &fakeCompleter{reply: "ok"}, &fakeTranscriber{text: "x"}, nil)
	st := session.NewState()

	if _, _, err := svc.SubmitRecording(context.Background(), st, []byte("not audio")); !errors.Is(err, ErrInvalidAudio) {
		t.Fatalf("expected ErrInvalidAudio, got %v", err)
	}
	if _, _, err := svc.SubmitRecording(context.Background(), st, recording.EncodeWAV([]int16{0, 0}, recording.SampleRate)); !errors.Is(err, recording.ErrEmptyRecording) {
		t.Fatalf("expected ErrEmptyRecording for silent clip")
	}
}
