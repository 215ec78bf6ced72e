package tui

import (
	"github.com/ruminaider/coach-admin/internal/query"
)

// FocusZone identifies which part of a selector has keyboard focus.
type FocusZone int

const (
	FocusSearch FocusZone = iota // Search input
	FocusList                    // Result rows
)

// State is the composite search state of a selector.
type State int

const (
	StateIdle       State = iota // nothing typed since the last commit
	StateDebouncing              // waiting for the quiet period
	StateCommitted               // query committed, page fetched or fetching
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// --- Inter-component messages ---

// SelectionChangedMsg proposes a new selection to the parent. The selector
// does not apply it until the parent calls SetSelected.
type SelectionChangedMsg struct {
	Resource string
	IDs      []string
}

// SelectorDoneMsg is sent when the user leaves a selector.
type SelectorDoneMsg struct {
	Resource string
	Aborted  bool // ctrl+c rather than esc
}

// fetchDoneMsg carries a page load back into the selector that issued it.
type fetchDoneMsg[E any] struct {
	owner  int64
	key    query.Key
	result query.Result[E]
	err    error
}

// ResizeMsg distributes terminal dimensions from the host to children.
type ResizeMsg struct{ Width, Height int }
