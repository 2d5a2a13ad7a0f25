package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ActionWildcard grants every action on a module. Granting it clears any
// partial grants; revoking it removes the module entry entirely.
const ActionWildcard = "*"

// PermissionGrant maps a module name to the actions allowed on it. A module
// appears at most once in a set; absence means no access.
type PermissionGrant struct {
	Module  string   `json:"module"`
	Actions []string `json:"actions"`
}

// PermissionSet is the sparse module→actions grant structure edited by the
// role permission screen and enforced by the RBAC middleware.
type PermissionSet []PermissionGrant

// Toggle flips the (module, action) grant and returns the updated set.
//
// Rules:
//   - no entry for module: create one with just this action
//   - wildcard toggled while already present: remove the module entry
//   - wildcard toggled while absent: replace actions with ["*"]
//   - specific action: toggle presence; adding strips an existing wildcard,
//     and an entry whose action list empties out is removed
func (s PermissionSet) Toggle(module, action string) PermissionSet {
	idx := s.indexOf(module)
	if idx < 0 {
		return append(s, PermissionGrant{Module: module, Actions: []string{action}})
	}

	entry := s[idx]
	hasWildcard := containsAction(entry.Actions, ActionWildcard)

	if action == ActionWildcard {
		if hasWildcard {
			return s.removeAt(idx)
		}
		s[idx].Actions = []string{ActionWildcard}
		return s
	}

	if containsAction(entry.Actions, action) {
		s[idx].Actions = removeAction(entry.Actions, action)
		if len(s[idx].Actions) == 0 {
			return s.removeAt(idx)
		}
		return s
	}

	actions := entry.Actions
	if hasWildcard {
		actions = removeAction(actions, ActionWildcard)
	}
	s[idx].Actions = append(actions, action)
	return s
}

// Clone deep-copies the set. Toggle mutates action slices in place, so a
// snapshot taken before a toggle must not share backing arrays with it.
func (s PermissionSet) Clone() PermissionSet {
	if s == nil {
		return nil
	}
	out := make(PermissionSet, len(s))
	for i, grant := range s {
		actions := make([]string, len(grant.Actions))
		copy(actions, grant.Actions)
		out[i] = PermissionGrant{Module: grant.Module, Actions: actions}
	}
	return out
}

// Has reports whether the set grants the action on the module, either
// explicitly or through the wildcard.
func (s PermissionSet) Has(module, action string) bool {
	idx := s.indexOf(module)
	if idx < 0 {
		return false
	}
	return containsAction(s[idx].Actions, action) || containsAction(s[idx].Actions, ActionWildcard)
}

// Empty reports whether no module has any grant. Role-permission submissions
// are rejected while the set is empty.
func (s PermissionSet) Empty() bool {
	return len(s) == 0
}

func (s PermissionSet) indexOf(module string) int {
	for i, grant := range s {
		if grant.Module == module {
			return i
		}
	}
	return -1
}

func (s PermissionSet) removeAt(idx int) PermissionSet {
	return append(s[:idx], s[idx+1:]...)
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func removeAction(actions []string, action string) []string {
	out := actions[:0]
	for _, a := range actions {
		if a != action {
			out = append(out, a)
		}
	}
	return out
}

// Value marshals the set to JSON for persistence.
func (s PermissionSet) Value() (driver.Value, error) {
	if s == nil {
		s = PermissionSet{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal permission set: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the set.
func (s *PermissionSet) Scan(value interface{}) error {
	if value == nil {
		*s = PermissionSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for PermissionSet", value)
	}
	if len(data) == 0 {
		*s = PermissionSet{}
		return nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("unmarshal permission set: %w", err)
	}
	return nil
}
