// Package schedule groups course programs by coach for the schedule view.
package schedule

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/ruminaider/coach-admin/internal/api"
)

// Unassigned names the group of programs without a coach.
const Unassigned = "Unassigned"

// CoachGroup is every program run by one coach.
type CoachGroup struct {
	CoachID   string
	CoachName string
	Programs  []api.Program
}

// Sessions returns the total number of sessions across the group.
func (g CoachGroup) Sessions() int {
	n := 0
	for _, p := range g.Programs {
		n += len(p.Sessions)
	}
	return n
}

// Next returns the first session starting at or after now.
func (g CoachGroup) Next(now time.Time) (api.Session, bool) {
	var best api.Session
	found := false
	for _, p := range g.Programs {
		for _, s := range p.Sessions {
			if s.StartsAt.Before(now) {
				continue
			}
			if !found || s.StartsAt.Before(best.StartsAt) {
				best, found = s, true
			}
		}
	}
	return best, found
}

// GroupByCoach groups programs by coach id. Groups are ordered by coach name
// then id, with the unassigned group last. Within a group programs are ordered
// by their first session and sessions by start time. The input is not modified.
func GroupByCoach(programs []api.Program) []CoachGroup {
	index := make(map[string]int)
	var groups []CoachGroup
	for _, p := range programs {
		p.Sessions = slices.Clone(p.Sessions)
		slices.SortStableFunc(p.Sessions, func(a, b api.Session) int {
			return a.StartsAt.Compare(b.StartsAt)
		})

		id := p.CoachID
		i, ok := index[id]
		if !ok {
			name := p.CoachName
			if id == "" {
				name = Unassigned
			} else if name == "" {
				name = id
			}
			i = len(groups)
			index[id] = i
			groups = append(groups, CoachGroup{CoachID: id, CoachName: name})
		}
		groups[i].Programs = append(groups[i].Programs, p)
	}

	for i := range groups {
		slices.SortStableFunc(groups[i].Programs, compareByFirstSession)
	}
	slices.SortStableFunc(groups, func(a, b CoachGroup) int {
		if (a.CoachID == "") != (b.CoachID == "") {
			if a.CoachID == "" {
				return 1
			}
			return -1
		}
		return cmp.Or(
			strings.Compare(strings.ToLower(a.CoachName), strings.ToLower(b.CoachName)),
			strings.Compare(a.CoachID, b.CoachID),
		)
	})
	return groups
}

// programs without sessions sort after scheduled ones
func compareByFirstSession(a, b api.Program) int {
	switch {
	case len(a.Sessions) == 0 && len(b.Sessions) == 0:
		return strings.Compare(a.Title, b.Title)
	case len(a.Sessions) == 0:
		return 1
	case len(b.Sessions) == 0:
		return -1
	}
	return cmp.Or(
		a.Sessions[0].StartsAt.Compare(b.Sessions[0].StartsAt),
		strings.Compare(a.Title, b.Title),
	)
}

// Accordion tracks which coach groups are expanded.
type Accordion struct {
	multi    bool
	expanded map[string]bool
}

// NewAccordion creates an accordion. In single-open mode opening a group
// collapses the others; multi allows any number open at once.
func NewAccordion(multi bool) *Accordion {
	return &Accordion{multi: multi, expanded: make(map[string]bool)}
}

// Toggle flips the expansion of the group with key and reports whether it is
// now expanded.
func (a *Accordion) Toggle(key string) bool {
	if a.expanded[key] {
		delete(a.expanded, key)
		return false
	}
	if !a.multi {
		clear(a.expanded)
	}
	a.expanded[key] = true
	return true
}

// IsExpanded reports whether the group with key is open.
func (a *Accordion) IsExpanded(key string) bool {
	return a.expanded[key]
}

// CollapseAll closes every group.
func (a *Accordion) CollapseAll() {
	clear(a.expanded)
}

// Expanded returns the open keys in sorted order.
func (a *Accordion) Expanded() []string {
	keys := make([]string, 0, len(a.expanded))
	for k := range a.expanded {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
