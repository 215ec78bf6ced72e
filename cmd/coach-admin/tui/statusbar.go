package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar renders the bottom row with the selection summary and keyboard
// shortcuts.
type StatusBar struct {
	summary string
	width   int
	help    help.Model
	keys    help.KeyMap
}

// NewStatusBar creates a status bar listing the short help of keys.
func NewStatusBar(keys help.KeyMap) StatusBar {
	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = StatusBarKeyStyle
	h.Styles.ShortDesc = StatusBarStyle.Padding(0)
	h.Styles.ShortSeparator = StatusBarStyle.Padding(0)
	return StatusBar{help: h, keys: keys}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// Update replaces the summary shown on the left.
func (s *StatusBar) Update(summary string) {
	s.summary = summary
}

// View renders the status bar.
func (s StatusBar) View() string {
	leftPart := s.summary
	rightPart := s.help.ShortHelpView(s.keys.ShortHelp())

	leftWidth := ansi.StringWidth(leftPart)
	rightWidth := ansi.StringWidth(rightPart)
	availableWidth := s.width - 2 // account for StatusBarStyle padding
	gap := availableWidth - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	content := leftPart + strings.Repeat(" ", gap) + rightPart
	if s.width <= 0 {
		return StatusBarStyle.Render(content)
	}
	return StatusBarStyle.Width(s.width).Render(content)
}
