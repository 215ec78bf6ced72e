package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/schedule"
)

const sessionLayout = "Mon 02 Jan 15:04"

// ScheduleView lists coach groups as accordion headers. Expanded groups show
// their programs and session times.
type ScheduleView struct {
	groups    []schedule.CoachGroup
	accordion *schedule.Accordion
	cursor    int
	offset    int // first visible line
	now       time.Time
	width     int
	height    int // visible lines, 0 for unlimited
	quitting  bool
}

// scheduleChrome is the number of lines around the scrolled list.
const scheduleChrome = 4

// NewScheduleView groups programs by coach. multi allows several groups to be
// open at once.
func NewScheduleView(programs []api.Program, multi bool, now time.Time) ScheduleView {
	return ScheduleView{
		groups:    schedule.GroupByCoach(programs),
		accordion: schedule.NewAccordion(multi),
		now:       now,
	}
}

func groupKey(g schedule.CoachGroup) string {
	if g.CoachID == "" {
		return schedule.Unassigned
	}
	return g.CoachID
}

// Init implements tea.Model.
func (v ScheduleView) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (v ScheduleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = max(msg.Height-scheduleChrome, 1)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if v.cursor < len(v.groups)-1 {
				v.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Toggle):
			if v.cursor < len(v.groups) {
				v.accordion.Toggle(groupKey(v.groups[v.cursor]))
			}
		case msg.String() == "q", key.Matches(msg, DefaultKeyMap.Done), key.Matches(msg, DefaultKeyMap.Abort):
			v.quitting = true
			return v, tea.Quit
		}
	}
	v.clampScroll()
	return v, nil
}

// clampScroll keeps the cursor's header and as much of its open group as
// fits on screen.
func (v *ScheduleView) clampScroll() {
	lines, headers := v.lines()
	if len(headers) == 0 {
		v.offset = 0
		return
	}
	last := len(lines) - 1
	if v.cursor+1 < len(headers) {
		last = headers[v.cursor+1] - 1
	}
	v.offset, _ = scrollWindow(v.offset, last, len(lines), v.height)
	v.offset, _ = scrollWindow(v.offset, headers[v.cursor], len(lines), v.height)
}

// View implements tea.Model.
func (v ScheduleView) View() string {
	if v.quitting {
		return ""
	}
	if len(v.groups) == 0 {
		return ContentPaneStyle.Render(DimStyle.Render("Nothing found"))
	}

	lines, headers := v.lines()
	offset, end := scrollWindow(v.offset, headers[v.cursor], len(lines), v.height)

	var b strings.Builder
	b.WriteString(LabelStyle.Render("Schedule") + "\n\n")
	if offset > 0 {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}
	for _, line := range lines[offset:end] {
		b.WriteString(line + "\n")
	}
	if end < len(lines) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}
	b.WriteString("\n" + DimStyle.Render("space: expand · q: quit"))
	return ContentPaneStyle.Render(b.String())
}

// lines renders every group and returns the line index of each header.
func (v ScheduleView) lines() ([]string, []int) {
	var (
		lines   []string
		headers []int
	)
	for i, g := range v.groups {
		headers = append(headers, len(lines))
		open := v.accordion.IsExpanded(groupKey(g))
		marker := "▸"
		if open {
			marker = "▾"
		}
		header := fmt.Sprintf("%s %s  (%d programs, %d sessions)", marker, g.CoachName, len(g.Programs), g.Sessions())
		if next, ok := g.Next(v.now); ok {
			header += "  next " + next.StartsAt.Format(sessionLayout)
		}
		if i == v.cursor {
			lines = append(lines, ActiveGroupHeaderStyle.Render(header))
		} else {
			lines = append(lines, GroupHeaderStyle.Render(header))
		}
		if !open {
			continue
		}
		for _, p := range g.Programs {
			lines = append(lines, "    "+ProgramStyle.Render(p.Title))
			if len(p.Sessions) == 0 {
				lines = append(lines, "      "+DimStyle.Render("no sessions"))
			}
			for _, s := range p.Sessions {
				line := s.StartsAt.Format(sessionLayout) + " – " + s.EndsAt.Format("15:04")
				if s.StartsAt.Before(v.now) {
					line = DimStyle.Render(line)
				}
				lines = append(lines, "      "+line)
			}
		}
	}
	return lines, headers
}

// Expanded returns the keys of the open groups.
func (v ScheduleView) Expanded() []string {
	return v.accordion.Expanded()
}
