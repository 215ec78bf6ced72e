package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/coach-admin/internal/selection"
)

// SelectScreen is a full-screen program around one selector. It owns the
// canonical selection and applies the changes the selector proposes.
type SelectScreen[E any] struct {
	selector Selector[E]
	selected selection.Set
	aborted  bool
	quitting bool
}

// NewSelectScreen wraps a selector preloaded with initial ids.
func NewSelectScreen[E any](cfg SelectorConfig[E], initial []string) *SelectScreen[E] {
	s := NewSelector(cfg)
	set := selection.New(initial...)
	s.SetSelected(set.IDs())
	return &SelectScreen[E]{selector: s, selected: set}
}

// Init implements tea.Model.
func (m *SelectScreen[E]) Init() tea.Cmd {
	return m.selector.Init()
}

// Update implements tea.Model.
func (m *SelectScreen[E]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.selector.SetSize(msg.Width, msg.Height-8)
		return m, nil
	case SelectionChangedMsg:
		if msg.Resource != m.selector.Resource() {
			return m, nil
		}
		next := selection.New(msg.IDs...)
		if next.Equal(m.selected) {
			return m, nil
		}
		m.selected = next
		m.selector.SetSelected(m.selected.IDs())
		return m, nil
	case SelectorDoneMsg:
		m.aborted = msg.Aborted
		m.quitting = true
		m.selector.Dispose()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *SelectScreen[E]) View() string {
	if m.quitting {
		return ""
	}
	return m.selector.View()
}

// Selected returns the canonical selection.
func (m *SelectScreen[E]) Selected() []string {
	return m.selected.IDs()
}

// Mode returns the selection mode of the wrapped selector.
func (m *SelectScreen[E]) Mode() selection.Mode {
	return m.selector.Mode()
}

// Aborted reports whether the user left with ctrl+c.
func (m *SelectScreen[E]) Aborted() bool {
	return m.aborted
}

// RunSelect runs a select screen to completion and returns the chosen ids.
// opts are passed to tea.NewProgram.
func RunSelect[E any](cfg SelectorConfig[E], initial []string, opts ...tea.ProgramOption) ([]string, bool, error) {
	screen := NewSelectScreen(cfg, initial)
	if _, err := tea.NewProgram(screen, opts...).Run(); err != nil {
		return nil, false, err
	}
	return screen.Selected(), screen.Aborted(), nil
}
