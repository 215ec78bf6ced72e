package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorMantle   = lipgloss.Color(flavor.Mantle().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorGreen    = lipgloss.Color(flavor.Green().Hex)
	colorRed      = lipgloss.Color(flavor.Red().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
	colorMauve    = lipgloss.Color(flavor.Mauve().Hex)
	colorPeach    = lipgloss.Color(flavor.Peach().Hex)
	colorOverlay0 = lipgloss.Color(flavor.Overlay0().Hex)
)

// Selector styles.
var (
	// LabelStyle is used for the selector label.
	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMauve).
			Bold(true)

	// ExceptTagStyle marks a selector whose selection is inverted.
	ExceptTagStyle = lipgloss.NewStyle().
			Foreground(colorPeach).
			Italic(true)

	// SelectedStyle is used for checked rows.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// UnselectedStyle is used for unchecked rows.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// CursorRowStyle highlights the row under the cursor.
	CursorRowStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	// DimStyle is used for hints and secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0)

	// ChipStyle renders one selected entity.
	ChipStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1)

	// BareChipStyle renders a selected id that is not on the current page.
	BareChipStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface1).
			Padding(0, 1)

	// ErrorStyle is used for load failures and error toasts.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// SpinnerStyle colors the loading spinner.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	// ContentPaneStyle wraps the main content area.
	ContentPaneStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)
)

// Status bar styles.
var (
	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	// ToastStyle renders a transient error line above the status bar.
	ToastStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorRed).
			Padding(0, 1)
)

// Schedule styles.
var (
	// GroupHeaderStyle is used for collapsed coach headers.
	GroupHeaderStyle = lipgloss.NewStyle().
				Foreground(colorText)

	// ActiveGroupHeaderStyle is used for the coach header under the cursor.
	ActiveGroupHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Background(colorSurface1).
				Bold(true)

	// ProgramStyle is used for program titles inside an expanded group.
	ProgramStyle = lipgloss.NewStyle().
			Foreground(colorMauve)

	// FrameStyle is the border around standalone screens.
	FrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBlue).
			Background(colorMantle).
			Padding(0, 1)
)

// Table styles for non-interactive listings.
var (
	// TableHeaderStyle is used for column titles.
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMauve).
				Bold(true)

	// TableCellStyle is used for regular cells.
	TableCellStyle = lipgloss.NewStyle().
			Foreground(colorText)

	// SuccessStyle is used for confirmations.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)
)
