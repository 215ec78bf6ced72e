package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/coach-admin/internal/api"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(days, hours int) time.Time {
	return base.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

func session(days int) api.Session {
	return api.Session{StartsAt: at(days, 0), EndsAt: at(days, 1)}
}

func TestGroupByCoach_OrdersGroupsByName(t *testing.T) {
	programs := []api.Program{
		{ID: "p1", Title: "Yoga", CoachID: "c2", CoachName: "Zahra", Sessions: []api.Session{session(1)}},
		{ID: "p2", Title: "Run", CoachID: "c1", CoachName: "alireza", Sessions: []api.Session{session(2)}},
		{ID: "p3", Title: "Lift", CoachID: "c3", CoachName: "Babak", Sessions: []api.Session{session(3)}},
	}

	groups := GroupByCoach(programs)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"alireza", "Babak", "Zahra"},
		[]string{groups[0].CoachName, groups[1].CoachName, groups[2].CoachName})
}

func TestGroupByCoach_SameNameOrderedByID(t *testing.T) {
	groups := GroupByCoach([]api.Program{
		{ID: "p1", CoachID: "c9", CoachName: "Sara"},
		{ID: "p2", CoachID: "c4", CoachName: "Sara"},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "c4", groups[0].CoachID)
	assert.Equal(t, "c9", groups[1].CoachID)
}

func TestGroupByCoach_GroupsProgramsOfOneCoach(t *testing.T) {
	groups := GroupByCoach([]api.Program{
		{ID: "late", Title: "Late", CoachID: "c1", CoachName: "Ali", Sessions: []api.Session{session(9)}},
		{ID: "none", Title: "Unscheduled", CoachID: "c1", CoachName: "Ali"},
		{ID: "early", Title: "Early", CoachID: "c1", CoachName: "Ali", Sessions: []api.Session{session(5), session(2)}},
	})
	require.Len(t, groups, 1)
	g := groups[0]
	require.Len(t, g.Programs, 3)
	assert.Equal(t, "early", g.Programs[0].ID)
	assert.Equal(t, "late", g.Programs[1].ID)
	assert.Equal(t, "none", g.Programs[2].ID)
	assert.Equal(t, at(2, 0), g.Programs[0].Sessions[0].StartsAt, "sessions sorted by start")
	assert.Equal(t, 3, g.Sessions())
}

func TestGroupByCoach_UnassignedLast(t *testing.T) {
	groups := GroupByCoach([]api.Program{
		{ID: "p1", Title: "Office hours"},
		{ID: "p2", CoachID: "c1", CoachName: "Zed"},
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "Zed", groups[0].CoachName)
	assert.Equal(t, Unassigned, groups[1].CoachName)
	assert.Empty(t, groups[1].CoachID)
}

func TestGroupByCoach_DoesNotMutateInput(t *testing.T) {
	programs := []api.Program{
		{ID: "p1", CoachID: "c1", Sessions: []api.Session{session(5), session(1)}},
	}
	GroupByCoach(programs)
	assert.Equal(t, at(5, 0), programs[0].Sessions[0].StartsAt)
}

func TestGroupByCoach_Empty(t *testing.T) {
	assert.Empty(t, GroupByCoach(nil))
}

func TestCoachGroup_Next(t *testing.T) {
	g := CoachGroup{Programs: []api.Program{
		{Sessions: []api.Session{session(1), session(6)}},
		{Sessions: []api.Session{session(4)}},
	}}
	next, ok := g.Next(at(2, 0))
	require.True(t, ok)
	assert.Equal(t, at(4, 0), next.StartsAt)

	_, ok = g.Next(at(10, 0))
	assert.False(t, ok)
}

func TestAccordion_SingleOpen(t *testing.T) {
	a := NewAccordion(false)
	assert.True(t, a.Toggle("c1"))
	assert.True(t, a.Toggle("c2"))
	assert.False(t, a.IsExpanded("c1"))
	assert.True(t, a.IsExpanded("c2"))

	assert.False(t, a.Toggle("c2"))
	assert.Empty(t, a.Expanded())
}

func TestAccordion_MultiOpen(t *testing.T) {
	a := NewAccordion(true)
	a.Toggle("c2")
	a.Toggle("c1")
	assert.Equal(t, []string{"c1", "c2"}, a.Expanded())

	a.CollapseAll()
	assert.False(t, a.IsExpanded("c1"))
}
