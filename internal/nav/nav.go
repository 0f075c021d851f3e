// Package nav holds the console's shared navigation state: the currently
// active modal action and the list-view query, serialized through a single
// url.Values key-value channel the way a browser keeps view state in its
// query string. Restoring an encoded state reproduces the exact view, and a
// small history stack stands in for back navigation.
//
// Writes are last-writer-wins with no conflict detection. The root UI model
// is the single owner and serializes all writes; the mutex only protects
// against reads from background commands.
package nav

import (
	"net/url"
	"sync"
)

// Action is the currently active modal intent.
type Action string

const (
	ActionNone   Action = ""
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionMore   Action = "more"
)

const (
	actionKey = "action"
	targetKey = "id"
)

// ParseAction maps a raw parameter value to an Action. Unknown values fold
// to ActionNone so a mangled saved state degrades to "no dialog open".
func ParseAction(raw string) Action {
	switch Action(raw) {
	case ActionCreate, ActionEdit, ActionDelete, ActionMore:
		return Action(raw)
	}
	return ActionNone
}

// State is the shared key-value channel. At most one action is active at a
// time; opening a new action while one is open overwrites it.
type State struct {
	mu      sync.Mutex
	values  url.Values
	history []string
	gen     uint64
}

// NewState returns an empty state: no action, no query.
func NewState() *State {
	return &State{values: url.Values{}}
}

// Restore decodes a previously encoded state. Invalid input is an error and
// leaves the state untouched.
func (s *State) Restore(raw string) error {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
	s.gen++
	return nil
}

// Open activates an action, overwriting any action already active. The
// target id is set when non-empty and is meaningful for edit/delete/more.
func (s *State) Open(action Action, id string) {
	if action == ActionNone {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Set(actionKey, string(action))
	if id != "" {
		s.values.Set(targetKey, id)
	}
	s.gen++
}

// Close deactivates whatever action is active and clears the target id.
// Closing an already-closed state is a no-op.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.values.Has(actionKey) && !s.values.Has(targetKey) {
		return
	}
	s.values.Del(actionKey)
	s.values.Del(targetKey)
	s.gen++
}

// Action returns the active action, ActionNone when no dialog is open.
func (s *State) Action() Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ParseAction(s.values.Get(actionKey))
}

// IsOpen reports whether the given action is the active one.
func (s *State) IsOpen(action Action) bool {
	return action != ActionNone && s.Action() == action
}

// Target returns the id the active action applies to, "" when absent.
func (s *State) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Get(targetKey)
}

// Query returns a copy of the full key-value state, action keys included.
func (s *State) Query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// Rewrite replaces the owned keys with the given values: every owned key is
// removed first, then every key present in v is written. The list-query
// orchestrator uses this to mirror page/size/search/filter state without
// touching the action keys.
func (s *State) Rewrite(v url.Values, owned ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range owned {
		s.values.Del(key)
	}
	for key, vals := range v {
		s.values[key] = append([]string(nil), vals...)
	}
	s.gen++
}

// Push records the current encoding on the history stack. Call it before a
// navigation change that back navigation should be able to unwind.
func (s *State) Push() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, s.values.Encode())
}

// Back restores the most recently pushed state. It reports false when the
// history is empty.
func (s *State) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	raw := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	values, err := url.ParseQuery(raw)
	if err != nil {
		return false
	}
	s.values = values
	s.gen++
	return true
}

// Encode serializes the state to a canonical query string.
func (s *State) Encode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Encode()
}

// Generation increments on every mutation. Async results captured under an
// older generation are stale and must be dropped by the consumer.
func (s *State) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func cloneValues(v url.Values) url.Values {
	dup := make(url.Values, len(v))
	for key, vals := range v {
		dup[key] = append([]string(nil), vals...)
	}
	return dup
}
