package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/fixtures"
	"github.com/ruminaider/coach-admin/internal/schedule"
)

func TestLoadPrograms_ReadsEveryPage(t *testing.T) {
	rt, store := fixtureRuntime(t, fixtures.Options{})

	programs, err := loadPrograms(context.Background(), rt, "")
	require.NoError(t, err)
	assert.Len(t, programs, 11)
	assert.Equal(t, 1, store.TotalHits(api.ResourcePrograms))
}

func TestRenderSchedule(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})
	programs, err := loadPrograms(context.Background(), rt, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	renderSchedule(&buf, schedule.GroupByCoach(programs), now)
	out := buf.String()

	assert.Contains(t, out, "Sara Ahmadi")
	assert.Contains(t, out, "Unassigned (1 sessions)")
	assert.Contains(t, out, "Open office hours")
	assert.Contains(t, out, "✓ Mon 05 Jan 2026 09:00 - 10:30")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Sara Ahmadi")), bytes.Index(buf.Bytes(), []byte("Unassigned")))
}

func TestRenderSchedule_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderSchedule(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "Nothing found")
}
