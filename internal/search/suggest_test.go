package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCities() []string {
	return []string{"amsterdam", "amstelveen", "rotterdam", "utrecht"}
}

func TestSetInput_SubstringMatch(t *testing.T) {
	s := NewSuggester(testCities())

	s.SetInput("dam")
	assert.Equal(t, []string{"amsterdam", "rotterdam"}, s.Matches())
	assert.Equal(t, -1, s.Highlighted())

	s.SetInput("")
	assert.Empty(t, s.Matches())
}

func TestKeyboardSelectionEqualsClick(t *testing.T) {
	for n := 0; n < 2; n++ {
		keyboard := NewSuggester(testCities())
		keyboard.SetInput("dam")
		for i := 0; i <= n; i++ {
			keyboard.MoveDown()
		}
		viaKeys, ok := keyboard.Commit()
		require.True(t, ok)

		mouse := NewSuggester(testCities())
		mouse.SetInput("dam")
		viaClick, ok := mouse.Select(n)
		require.True(t, ok)

		assert.Equal(t, viaClick, viaKeys, "arrow-down x%d + Enter must match clicking suggestion %d", n+1, n)
	}
}

func TestMoveDown_StopsAtLastSuggestion(t *testing.T) {
	s := NewSuggester(testCities())
	s.SetInput("dam")

	for i := 0; i < 10; i++ {
		s.MoveDown()
	}
	assert.Equal(t, 1, s.Highlighted())

	s.MoveUp()
	assert.Equal(t, 0, s.Highlighted())
	s.MoveUp()
	assert.Equal(t, 0, s.Highlighted())
}

func TestCommit_WithoutHighlightDoesNothing(t *testing.T) {
	s := NewSuggester(testCities())
	s.SetInput("dam")

	_, ok := s.Commit()
	assert.False(t, ok)
	assert.Len(t, s.Matches(), 2, "list stays open")
}

func TestCommitAndDismissClearTheList(t *testing.T) {
	s := NewSuggester(testCities())
	s.SetInput("utr")
	s.MoveDown()

	city, ok := s.Commit()
	require.True(t, ok)
	assert.Equal(t, "utrecht", city)
	assert.Empty(t, s.Matches())
	assert.Equal(t, -1, s.Highlighted())

	s.SetInput("rot")
	s.Dismiss()
	assert.Empty(t, s.Matches())
}
