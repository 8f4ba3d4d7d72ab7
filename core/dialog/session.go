package dialog

import (
	"sync"

	"finbot/core/ledger"
)

// Session holds one user's position in the dialogue and the partially built
// transaction accumulated so far. Sessions never outlive the process.
type Session struct {
	Step    Step
	Pending ledger.Transaction
}

// Sessions is an in-memory session store keyed by user identity. Distinct
// users never share state; rapid events from the same user are serialized by
// the lock but not made atomic across read-modify-write turns.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessions constructs an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, or nil when none exists.
func (s *Sessions) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[userID]; ok {
		copied := *sess
		return &copied
	}
	return nil
}

// Put replaces the user's session.
func (s *Sessions) Put(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &sess
}

// Clear removes the user's session entirely.
func (s *Sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// InProgress reports whether the user has an active session.
func (s *Sessions) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

// Len reports how many users currently hold a session.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
