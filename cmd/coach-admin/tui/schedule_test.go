package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ruminaider/coach-admin/internal/api"
)

func schedulePrograms() []api.Program {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []api.Program{
		{ID: "g1", Title: "Yoga cohort 1", CoachID: "c2", CoachName: "Zahra",
			Sessions: []api.Session{{StartsAt: at, EndsAt: at.Add(time.Hour)}}},
		{ID: "g2", Title: "Running basics", CoachID: "c1", CoachName: "Babak",
			Sessions: []api.Session{{StartsAt: at.AddDate(0, 0, 3), EndsAt: at.AddDate(0, 0, 3).Add(time.Hour)}}},
		{ID: "g3", Title: "Office hours"},
	}
}

func TestScheduleView_Headers(t *testing.T) {
	v := NewScheduleView(schedulePrograms(), false, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	view := v.View()

	assert.Contains(t, view, "▸ Babak  (1 programs, 1 sessions)")
	assert.Contains(t, view, "▸ Zahra")
	assert.Contains(t, view, "▸ Unassigned")
	assert.Contains(t, view, "next Thu 05 Mar 09:00")
	assert.NotContains(t, view, "Running basics")
}

func TestScheduleView_ToggleExpandsSingleGroup(t *testing.T) {
	var m tea.Model = NewScheduleView(schedulePrograms(), false, time.Time{})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Running basics")
	assert.Contains(t, m.View(), "Thu 05 Mar 09:00 – 10:00")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "Yoga cohort 1")
	assert.NotContains(t, view, "Running basics", "single-open mode collapses the previous group")
	assert.Equal(t, []string{"c2"}, m.(ScheduleView).Expanded())
}

func TestScheduleView_MultiOpen(t *testing.T) {
	var m tea.Model = NewScheduleView(schedulePrograms(), true, time.Time{})
	for range 3 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, []string{"Unassigned", "c1", "c2"}, m.(ScheduleView).Expanded())
	assert.Contains(t, m.View(), "no sessions")
}

func TestScheduleView_Quit(t *testing.T) {
	var m tea.Model = NewScheduleView(nil, false, time.Time{})
	assert.Contains(t, m.View(), "Nothing found")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestScheduleView_ScrollsToCursor(t *testing.T) {
	var programs []api.Program
	for i := range 12 {
		c := string(rune('A' + i))
		programs = append(programs, api.Program{ID: "g" + c, Title: "Cohort " + c, CoachID: "c" + c, CoachName: "Coach " + c})
	}
	var m tea.Model = NewScheduleView(programs, false, time.Time{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})

	view := m.View()
	assert.Contains(t, view, "Coach B")
	assert.NotContains(t, view, "Coach C")
	assert.Contains(t, view, "↓ more")

	for range 11 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	view = m.View()
	assert.Contains(t, view, "Coach L")
	assert.Contains(t, view, "↑ more")
	assert.NotContains(t, view, "Coach A ")
	assert.NotContains(t, view, "↓ more")

	// Opening the group keeps its header and programs on screen.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = m.View()
	assert.Contains(t, view, "▾ Coach K")
	assert.Contains(t, view, "Cohort K")
}
