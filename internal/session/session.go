// Package session keeps all per-user state. Every entity lives in memory for
// the lifetime of one browser session; nothing is written to durable storage.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role selects which actions and templates are available.
type Role string

const (
	RoleUnset   Role = ""
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// ParseRole validates a user-supplied role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleDoctor:
		return Role(s), nil
	default:
		return RoleUnset, fmt.Errorf("unknown role %q", s)
	}
}

// SymptomRecord is the current symptom text, typed or transcribed.
// Overwritten by each new submission.
type SymptomRecord struct {
	Text       string    `json:"text"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ConsultationEntry is an immutable snapshot appended to the history at the
// moment an analysis completes. Entries are never mutated afterwards, only
// cleared in bulk.
type ConsultationEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Symptoms  string    `json:"symptoms"`
	Analysis  string    `json:"analysis"`
}

// State is the session-scoped store. One State per session ID; handlers are
// the single writer for their session, the mutex only guards against a
// browser double-firing requests.
type State struct {
	mu       sync.Mutex
	role     Role
	symptoms *SymptomRecord
	analysis string
	history  []ConsultationEntry
}

func NewState() *State { return &State{} }

func (s *State) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *State) SetRole(r Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = r
}

// Symptoms returns the current record, or nil when none has been submitted.
func (s *State) Symptoms() *SymptomRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.symptoms == nil {
		return nil
	}
	rec := *s.symptoms
	return &rec
}

func (s *State) SetSymptoms(text string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symptoms = &SymptomRecord{Text: text, RecordedAt: at}
}

// Analysis returns the latest analysis text, empty when unset.
func (s *State) Analysis() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

func (s *State) SetAnalysis(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = text
}

func (s *State) AppendHistory(e ConsultationEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, e)
}

// History returns a copy; mutating the returned slice does not affect the
// stored entries.
func (s *State) History() []ConsultationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConsultationEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *State) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// ClearAll resets every key to its initial empty value. The role survives a
// clear: it belongs to the person, not to the consultation.
func (s *State) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symptoms = nil
	s.analysis = ""
	s.history = nil
}

// sessionTTL is how long an untouched session survives. Abandoned browser
// tabs would otherwise grow the manager without bound.
const sessionTTL = 2 * time.Hour

// Manager owns all live sessions, keyed by session ID. Every lookup refreshes
// the session's idle clock; sessions idle past sessionTTL are evicted on the
// next Create.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*managedState
	now      func() time.Time
}

type managedState struct {
	state   *State
	touched time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*managedState),
		now:      time.Now,
	}
}

// Get returns the state for id, or nil if the session is unknown.
func (m *Manager) Get(id uuid.UUID) *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms := m.sessions[id]
	if ms == nil {
		return nil
	}
	ms.touched = m.now()
	return ms.state
}

// Create registers a fresh session and returns its ID and state.
func (m *Manager) Create() (uuid.UUID, *State) {
	id := uuid.New()
	st := NewState()
	m.mu.Lock()
	m.evictIdleLocked()
	m.sessions[id] = &managedState{state: st, touched: m.now()}
	m.mu.Unlock()
	return id, st
}

// GetOrCreate resolves id to its state, creating a new session when the ID
// is unknown. The returned ID differs from the argument only in that case.
func (m *Manager) GetOrCreate(id uuid.UUID) (uuid.UUID, *State) {
	if st := m.Get(id); st != nil {
		return id, st
	}
	return m.Create()
}

func (m *Manager) evictIdleLocked() {
	cutoff := m.now().Add(-sessionTTL)
	for id, ms := range m.sessions {
		if ms.touched.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
