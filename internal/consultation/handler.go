package consultation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"davis-triage/internal/agent"
	"davis-triage/internal/recording"
	"davis-triage/internal/session"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "davis_session"

	// maxAudioUpload caps a clip upload. A full 60 s clip at 44.1 kHz
	// 16-bit mono is ~5.3 MB.
	maxAudioUpload = 10 << 20
)

// ReportBuilder renders a session's history to a downloadable document.
type ReportBuilder interface {
	Build(entries []session.ConsultationEntry) ([]byte, error)
}

type Handler struct {
	svc      *Service
	sessions *session.Manager
	reports  ReportBuilder
}

func NewHandler(svc *Service, sessions *session.Manager, reports ReportBuilder) *Handler {
	return &Handler{svc: svc, sessions: sessions, reports: reports}
}

// resolveSession finds the caller's session via header or cookie, creating
// one on demand. The (possibly new) ID is echoed on both channels so the
// page can keep using it.
func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) *session.State {
	raw := r.Header.Get(sessionHeader)
	if raw == "" {
		if c, err := r.Cookie(sessionCookie); err == nil {
			raw = c.Value
		}
	}

	var id uuid.UUID
	var st *session.State
	if parsed, err := uuid.Parse(raw); err == nil {
		id, st = h.sessions.GetOrCreate(parsed)
	} else {
		id, st = h.sessions.Create()
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id.String(), Path: "/"})
	w.Header().Set(sessionHeader, id.String())
	return st
}

// GetSession reports the sidebar statistics: role, consultation count and
// whether symptoms are registered.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	writeJSON(w, map[string]interface{}{
		"role":          st.Role(),
		"consultations": st.HistoryLen(),
		"has_symptoms":  st.Symptoms() != nil,
	})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	role, err := session.ParseRole(req.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	st.SetRole(role)
	writeJSON(w, map[string]interface{}{"role": role})
}

type submitSymptomsRequest struct {
	Text string `json:"text"`
}

func (h *Handler) SubmitSymptoms(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)

	var req submitSymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.svc.SubmitSymptoms(r.Context(), st, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) SubmitAudio(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "missing audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		http.Error(w, "failed to read audio file", http.StatusInternalServerError)
		return
	}

	text, res, err := h.svc.SubmitRecording(r.Context(), st, buf.Bytes())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"text":      text,
		"analysis":  res.Analysis,
		"urgent":    res.Urgent,
		"code":      res.Code,
		"timestamp": res.Timestamp,
	})
}

func (h *Handler) DoctorQuestions(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	out, err := h.svc.FollowUpQuestions(r.Context(), st)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"questions": out})
}

func (h *Handler) DoctorEmergency(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	out, err := h.svc.EmergencyCheck(r.Context(), st)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"assessment": out})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	writeJSON(w, map[string]interface{}{"history": st.History()})
}

func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	st.ClearAll()
	writeJSON(w, map[string]string{"status": "cleared"})
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	st := h.resolveSession(w, r)
	entries := st.History()
	if len(entries) == 0 {
		http.Error(w, ErrNoSymptoms.Error(), http.StatusConflict)
		return
	}
	pdf, err := h.reports.Build(entries)
	if err != nil {
		http.Error(w, "report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="consultation_report.pdf"`)
	w.Write(pdf)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/session", h.GetSession)
	r.Post("/session/role", h.SetRole)
	r.Post("/symptoms", h.SubmitSymptoms)
	r.Post("/symptoms/audio", h.SubmitAudio)
	r.Post("/doctor/questions", h.DoctorQuestions)
	r.Post("/doctor/emergency", h.DoctorEmergency)
	r.Get("/history", h.GetHistory)
	r.Delete("/history", h.ClearHistory)
	r.Get("/report", h.DownloadReport)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps service failures onto HTTP statuses. External-call
// failures surface as messages; they never take the session down.
func writeError(w http.ResponseWriter, err error) {
	var completionErr *agent.CompletionError
	var transcriptionErr *agent.TranscriptionError
	var captureErr *recording.CaptureError

	switch {
	case errors.Is(err, ErrNoSymptoms):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrEmptySymptoms), errors.Is(err, ErrInvalidAudio), errors.Is(err, recording.ErrEmptyRecording):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &completionErr), errors.As(err, &transcriptionErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &captureErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
