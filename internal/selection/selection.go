// Package selection manages the ordered, duplicate-free set of entity ids a
// user has picked in a multi-selector.
package selection

import (
	"fmt"
	"slices"
)

// Mode is the meaning of a selection.
type Mode int

const (
	// Include means the selected ids are the chosen entities.
	Include Mode = iota
	// Except means every entity is chosen except the selected ids.
	Except
)

// String returns the mode name used in payloads and logs.
func (m Mode) String() string {
	if m == Except {
		return "except"
	}
	return "include"
}

// Set is an insertion-ordered set of ids. The zero value is empty and ready
// to use. Set is a value type: mutating methods use pointer receivers and
// IDs returns a copy, so a parent can hand a Set to children without sharing.
type Set struct {
	ids []string
}

// New returns a set of ids, dropping duplicates and empty ids while keeping
// the first occurrence order.
func New(ids ...string) Set {
	var s Set
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Contains reports whether id is selected.
func (s Set) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Add appends id when it is not already selected.
func (s *Set) Add(id string) {
	if id == "" || s.Contains(id) {
		return
	}
	s.ids = append(slices.Clip(s.ids), id)
}

// Remove drops id. Removing an absent id is a no-op.
func (s *Set) Remove(id string) {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return
	}
	s.ids = slices.Delete(slices.Clone(s.ids), i, i+1)
}

// Toggle removes id when selected and appends it otherwise.
func (s *Set) Toggle(id string) {
	if s.Contains(id) {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ids = nil
}

// IDs returns a copy of the selected ids in insertion order.
func (s Set) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s Set) Len() int {
	return len(s.ids)
}

// Equal reports whether both sets hold the same ids in the same order.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.ids, other.ids)
}

// Describe summarizes the selection for status lines.
func (s Set) Describe(mode Mode) string {
	switch {
	case mode == Except && s.Len() == 0:
		return "all"
	case mode == Except:
		return fmt.Sprintf("all except %d", s.Len())
	case s.Len() == 0:
		return "none selected"
	default:
		return fmt.Sprintf("%d selected", s.Len())
	}
}
