// Package session holds per-session document and analysis state.
//
// Session state is the only shared mutable data in the pipeline. Keeping it
// keyed by session ID means one caller's document can never leak into
// another's Q&A context.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/report"
)

// Session is one caller's document and, after a successful analysis, its
// record and rendered report.
type Session struct {
	ID         string                 `json:"id"`
	Source     string                 `json:"source"`
	Text       string                 `json:"-"`
	Record     *models.AnalysisRecord `json:"record,omitempty"`
	Report     *report.Rendered       `json:"report,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	AnalyzedAt *time.Time             `json:"analyzed_at,omitempty"`
}

// Store is an in-memory session store safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session for the given document and returns it.
func (s *Store) Create(source, text string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Source:    source,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return s.snapshot(sess)
}

// Get returns a snapshot of the session, or false if it does not exist.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return s.snapshot(sess), true
}

// SetAnalysis stores the analysis result on the session. Returns false if
// the session does not exist.
func (s *Store) SetAnalysis(id string, rec *models.AnalysisRecord, rendered *report.Rendered) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	now := time.Now()
	sess.Record = rec
	sess.Report = rendered
	sess.AnalyzedAt = &now
	return true
}

// Delete removes the session if present.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// snapshot copies the session header so callers cannot mutate stored state.
// Record and Report are immutable once set and are shared by reference.
func (s *Store) snapshot(sess *Session) *Session {
	cp := *sess
	return &cp
}
