// Package cartui tracks the open/closed state of the slide-out cart
// panel per shopper session, so the panel survives page navigation.
package cartui

import "sync"

// PanelService tracks cart panel visibility keyed by session. Sessions
// start closed; state is process-local and intentionally ephemeral.
type PanelService struct {
	mu   sync.RWMutex
	open map[string]bool
}

// NewPanelService creates a new PanelService
func NewPanelService() *PanelService {
	return &PanelService{
		open: make(map[string]bool),
	}
}

// Open shows the panel for the session.
func (s *PanelService) Open(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[sessionID] = true
}

// Close hides the panel for the session.
func (s *PanelService) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, sessionID)
}

// Toggle flips the panel state and returns the new state.
func (s *PanelService) Toggle(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open[sessionID] {
		delete(s.open, sessionID)
		return false
	}
	s.open[sessionID] = true
	return true
}

// IsOpen reports whether the panel is visible for the session.
func (s *PanelService) IsOpen(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open[sessionID]
}
