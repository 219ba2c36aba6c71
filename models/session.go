package models

import "sync"

// Session carries the identity of the authenticated user across coordinator
// calls. It is owned by the caller and written only by a successful preflight.
type Session struct {
	mu     sync.RWMutex
	userID string
}

func NewSession() *Session {
	return &Session{}
}

// CurrentUser returns the current user identifier and whether one is set. A
// nil session has no user.
func (s *Session) CurrentUser() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

func (s *Session) SetCurrentUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// Clear forgets the current user.
func (s *Session) Clear() {
	s.SetCurrentUser("")
}
