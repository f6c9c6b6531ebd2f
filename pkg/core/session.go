package core

// MaxRecentTables bounds the conversation memory of touched tables.
const MaxRecentTables = 10

// Session is the conversation state for one chat session: a most-recent-first
// list of touched table names plus the last action tag. It is owned by the
// caller and passed into every Execute call; the core never holds a global
// instance.
type Session struct {
	// Recent holds touched table names, most recent first, capped at
	// MaxRecentTables.
	Recent []string `json:"recent,omitempty"`
	// LastAction is the tag of the last executed intent.
	LastAction string `json:"lastAction,omitempty"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Touch records table names as most recently used, deduplicating and keeping
// the list bounded.
func (s *Session) Touch(names ...string) {
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		out := make([]string, 0, len(s.Recent)+1)
		out = append(out, name)
		for _, r := range s.Recent {
			if !EqualFold(r, name) {
				out = append(out, r)
			}
		}
		if len(out) > MaxRecentTables {
			out = out[:MaxRecentTables]
		}
		s.Recent = out
	}
}

// Forget drops a table name from the recent list, for example after the
// table is deleted.
func (s *Session) Forget(name string) {
	out := s.Recent[:0]
	for _, r := range s.Recent {
		if !EqualFold(r, name) {
			out = append(out, r)
		}
	}
	s.Recent = out
}

// Rename rewrites a recorded table name in place, preserving recency order.
func (s *Session) Rename(oldName, newName string) {
	for i, r := range s.Recent {
		if EqualFold(r, oldName) {
			s.Recent[i] = newName
		}
	}
}

// Reset clears all conversation state.
func (s *Session) Reset() {
	s.Recent = nil
	s.LastAction = ""
}
