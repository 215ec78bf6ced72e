package selection_test

import (
	"testing"

	"github.com/ruminaider/coach-admin/internal/selection"
	"github.com/stretchr/testify/assert"
)

func TestNew_Dedups(t *testing.T) {
	s := selection.New("u1", "u2", "u1", "", "u3")
	assert.Equal(t, []string{"u1", "u2", "u3"}, s.IDs())
	assert.Equal(t, 3, s.Len())
}

func TestToggle(t *testing.T) {
	var s selection.Set
	s.Toggle("a")
	s.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Toggle("a")
	assert.Equal(t, []string{"b"}, s.IDs())
	assert.False(t, s.Contains("a"))
}

func TestToggle_Involution(t *testing.T) {
	for _, start := range [][]string{nil, {"x"}, {"a", "b", "c"}} {
		for _, id := range []string{"a", "b", "z"} {
			s := selection.New(start...)
			before := s.IDs()
			s.Toggle(id)
			s.Toggle(id)
			if s.Contains(id) {
				// A present id goes out and comes back at the end.
				assert.ElementsMatch(t, before, s.IDs())
			} else {
				assert.Equal(t, before, s.IDs())
			}
		}
	}
}

func TestToggle_AbsentIDRestoresExactOrder(t *testing.T) {
	s := selection.New("a", "b")
	s.Toggle("c")
	s.Toggle("c")
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestRemove(t *testing.T) {
	s := selection.New("u1", "u2")
	s.Remove("u1")
	assert.Equal(t, []string{"u2"}, s.IDs())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s := selection.New("u1", "u2")
	s.Remove("nope")
	assert.Equal(t, []string{"u1", "u2"}, s.IDs())

	var empty selection.Set
	empty.Remove("x")
	assert.Equal(t, 0, empty.Len())
}

func TestAdd_NoDuplicates(t *testing.T) {
	s := selection.New("a")
	s.Add("a")
	s.Add("")
	assert.Equal(t, []string{"a"}, s.IDs())
}

func TestIDs_ReturnsCopy(t *testing.T) {
	s := selection.New("a", "b")
	ids := s.IDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestRemove_DoesNotAliasCopies(t *testing.T) {
	parent := selection.New("a", "b", "c")
	child := parent
	child.Remove("a")
	assert.Equal(t, []string{"a", "b", "c"}, parent.IDs())
	assert.Equal(t, []string{"b", "c"}, child.IDs())
}

func TestClearAndEqual(t *testing.T) {
	s := selection.New("a")
	assert.True(t, s.Equal(selection.New("a")))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Equal(selection.Set{}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "none selected", selection.New().Describe(selection.Include))
	assert.Equal(t, "2 selected", selection.New("a", "b").Describe(selection.Include))
	assert.Equal(t, "all", selection.New().Describe(selection.Except))
	assert.Equal(t, "all except 1", selection.New("a").Describe(selection.Except))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "include", selection.Include.String())
	assert.Equal(t, "except", selection.Except.String())
}

func TestAdd_DoesNotAliasCopies(t *testing.T) {
	parent := selection.New("a", "b")
	child := parent
	child.Add("c")
	parent.Add("d")
	assert.Equal(t, []string{"a", "b", "c"}, child.IDs())
	assert.Equal(t, []string{"a", "b", "d"}, parent.IDs())
}
