package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/fixtures"
)

func TestLoadListing_Coaches(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	l, err := loadListing(context.Background(), rt, api.ResourceCoaches, api.ListParams{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, l.TotalPages)
	require.Len(t, l.Rows, 5)
	assert.Equal(t, []string{"c01", "Sara Ahmadi", "coach01@example.com", "fitness"}, l.Rows[0])

	var buf bytes.Buffer
	renderListing(&buf, l)
	out := buf.String()
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "Sara Ahmadi")
	assert.Contains(t, out, "page 1/3")
}

func TestLoadListing_ProductsHumanizePrice(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	l, err := loadListing(context.Background(), rt, api.ResourceProducts, api.ListParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, l.Rows, 1)
	assert.Equal(t, []string{"p001", "Fitness Foundations", "course", "490,000"}, l.Rows[0])
}

func TestLoadListing_CouponScopes(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	l, err := loadListing(context.Background(), rt, api.ResourceCoupons, api.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, l.Rows, 4)

	byCode := map[string][]string{}
	for _, r := range l.Rows {
		byCode[r[1]] = r
	}
	assert.Equal(t, []string{"k001", "WELCOME10", "10%", "0/∞", "2027-01-05", "all", "all"}, byCode["WELCOME10"])
	assert.Equal(t, "50,000", byCode["SPRING-50K"][2])
	assert.Equal(t, "12/100", byCode["SPRING-50K"][3])
	assert.Equal(t, "2 selected", byCode["SPRING-50K"][5])
	assert.Equal(t, "2 selected", byCode["VIP25"][6])
	assert.Equal(t, "all except 1", byCode["NOBOOT"][5])
}

func TestLoadListing_ProgramsWithoutCoach(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	l, err := loadListing(context.Background(), rt, api.ResourcePrograms, api.ListParams{Page: 1, Limit: 50, Query: "office"})
	require.NoError(t, err)
	require.Len(t, l.Rows, 1)
	assert.Equal(t, []string{"g99", "Open office hours", "Unassigned", "1", "2026-02-05"}, l.Rows[0])
}

func TestLoadListing_Empty(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	l, err := loadListing(context.Background(), rt, api.ResourceUsers, api.ListParams{Page: 1, Limit: 10, Query: "zzzz"})
	require.NoError(t, err)
	assert.Empty(t, l.Rows)

	var buf bytes.Buffer
	renderListing(&buf, l)
	assert.Contains(t, buf.String(), "Nothing found")
	assert.Contains(t, buf.String(), "page 1/1")
}

func TestLoadListing_CachesPages(t *testing.T) {
	rt, store := fixtureRuntime(t, fixtures.Options{})
	p := api.ListParams{Page: 2, Limit: 5, Query: "a"}

	for range 3 {
		_, err := loadListing(context.Background(), rt, api.ResourceCoaches, p)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.TotalHits(api.ResourceCoaches))
}

func TestLoadListing_Errors(t *testing.T) {
	rt, _ := fixtureRuntime(t, fixtures.Options{})

	_, err := loadListing(context.Background(), rt, "invoices", api.ListParams{Page: 1, Limit: 5})
	assert.ErrorContains(t, err, `unknown resource "invoices"`)

	_, err = loadListing(context.Background(), rt, api.ResourceCoaches, api.ListParams{Page: 0, Limit: 5})
	assert.ErrorIs(t, err, api.ErrInvalidParams)
}

func TestDescribeScope(t *testing.T) {
	assert.Equal(t, "all", describeScope(nil, "include"))
	assert.Equal(t, "3 selected", describeScope([]string{"a", "b", "c"}, "include"))
	assert.Equal(t, "all", describeScope(nil, "except"))
	assert.Equal(t, "all except 2", describeScope([]string{"a", "b", "a"}, "except"))
}
