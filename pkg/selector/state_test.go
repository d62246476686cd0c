package selector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greek() []Option {
	return []Option{
		{Value: "a", Label: "Alpha"},
		{Value: "b", Label: "Beta"},
		{Value: "c", Label: "Gamma"},
	}
}

func TestFilter(t *testing.T) {
	options := []Option{
		{Value: "eng", Label: "Engineering"},
		{Value: "fin", Label: "Finance"},
		{Value: "hr", Label: "Human Resources"},
		{Value: "ops", Label: "Operations"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query matches nothing", query: "", want: nil},
		{name: "blank query matches nothing", query: "   ", want: nil},
		{name: "substring in the middle", query: "ance", want: []string{"fin"}},
		{name: "case insensitive", query: "HUMAN", want: []string{"hr"}},
		{name: "keeps original order", query: "n", want: []string{"eng", "fin", "hr", "ops"}},
		{name: "not prefix only", query: "sources", want: []string{"hr"}},
		{name: "not fuzzy", query: "egr", want: []string{}},
		{name: "spaces are part of a non-blank query", query: "n r", want: []string{"hr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(options, tt.query)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			values := make([]string, 0, len(got))
			for _, o := range got {
				values = append(values, o.Value)
			}
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestFilter_SubsetProperty(t *testing.T) {
	options := greek()
	for _, q := range []string{"a", "A", "et", "mm", "x", "ALPHA", "al"} {
		got := Filter(options, q)
		var want []Option
		for _, o := range options {
			if strings.Contains(strings.ToLower(o.Label), strings.ToLower(q)) {
				want = append(want, o)
			}
		}
		assert.ElementsMatch(t, want, got, "query %q", q)
		assert.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i], got[i], "order for query %q", q)
		}
	}
}

func TestLabelFor(t *testing.T) {
	options := greek()
	assert.Equal(t, "Beta", LabelFor(options, "b"))
	assert.Equal(t, "", LabelFor(options, ""))
	assert.Equal(t, "zeta", LabelFor(options, "zeta"), "unknown values fall back to themselves")
	assert.Equal(t, "zeta", LabelFor(nil, "zeta"))
}

func TestState_NewShowsCommittedLabel(t *testing.T) {
	s := NewState(greek(), "c")
	assert.Equal(t, "Gamma", s.Query())
	assert.False(t, s.IsOpen())
	assert.Equal(t, -1, s.Highlighted())

	missing := NewState(greek(), "omega")
	assert.Equal(t, "omega", missing.Query())

	var zero State
	assert.Equal(t, "", zero.Query())
	assert.False(t, zero.IsOpen())
	assert.Nil(t, zero.Filtered())
}

func TestState_OpenIffQueryNonBlank(t *testing.T) {
	for _, q := range []string{"a", " a", "xyz", "", " ", "\t", "Beta"} {
		s := NewState(greek(), "")
		s.Edit(q)
		assert.Equal(t, strings.TrimSpace(q) != "", s.IsOpen(), "query %q", q)
	}
}

func TestState_TypeNavigateEnter(t *testing.T) {
	s := NewState(greek(), "")

	_, committed := s.Edit("a")
	require.False(t, committed)
	assert.True(t, s.IsOpen())
	// "Beta" ends in "a", so every option matches.
	assert.Equal(t, greek(), s.Filtered())
	assert.Equal(t, -1, s.Highlighted())

	s.MoveDown()
	assert.Equal(t, 0, s.Highlighted())

	value, ok := s.Enter()
	require.True(t, ok)
	assert.Equal(t, "a", value)
	assert.Equal(t, "a", s.Committed())
	assert.Equal(t, "Alpha", s.Query())
	assert.False(t, s.IsOpen())
	assert.Equal(t, -1, s.Highlighted())
}

func TestState_NoMatchKeepsListOpen(t *testing.T) {
	s := NewState(greek(), "b")
	s.Edit("xyz")
	assert.True(t, s.IsOpen())
	assert.Empty(t, s.Filtered())

	s.MoveDown()
	assert.Equal(t, -1, s.Highlighted())
	_, ok := s.Enter()
	assert.False(t, ok)
	_, ok = s.Pick(0)
	assert.False(t, ok, "the empty-state row is not an option")
	assert.Equal(t, "b", s.Committed())
}

func TestState_HighlightWraps(t *testing.T) {
	s := NewState(greek(), "")
	s.Edit("a") // Alpha, Beta, Gamma

	s.MoveDown()
	s.MoveDown()
	s.MoveDown()
	assert.Equal(t, 2, s.Highlighted())
	s.MoveDown()
	assert.Equal(t, 0, s.Highlighted(), "down from the last match wraps to the first")

	s.MoveUp()
	assert.Equal(t, 2, s.Highlighted(), "up from the first match wraps to the last")

	s.Edit("al")
	assert.Equal(t, -1, s.Highlighted(), "new keystroke resets the highlight")
	s.MoveUp()
	assert.Equal(t, 0, s.Highlighted(), "up with no highlight lands on the last match")
	assert.Len(t, s.Filtered(), 1)
}

func TestState_HighlightIgnoredWhileClosed(t *testing.T) {
	s := NewState(greek(), "a")
	s.MoveDown()
	s.MoveUp()
	assert.Equal(t, -1, s.Highlighted())
	_, ok := s.Enter()
	assert.False(t, ok)
}

func TestState_PickBypassesHighlight(t *testing.T) {
	s := NewState(greek(), "")
	s.Edit("a")
	s.MoveDown() // Alpha highlighted

	value, ok := s.Pick(2)
	require.True(t, ok)
	assert.Equal(t, "c", value)
	assert.Equal(t, "Gamma", s.Query())
	assert.False(t, s.IsOpen())

	_, ok = s.Pick(5)
	assert.False(t, ok)
}

func TestState_EscapeRevertsWithoutCommit(t *testing.T) {
	s := NewState(greek(), "b")
	s.Edit("G")
	s.Edit("Ga")
	s.Edit("Gam")
	s.MoveDown()

	s.Escape()
	assert.Equal(t, "Beta", s.Query())
	assert.Equal(t, "b", s.Committed())
	assert.False(t, s.IsOpen())

	empty := NewState(greek(), "")
	empty.Edit("x")
	empty.Escape()
	assert.Equal(t, "", empty.Query())
}

func TestState_BlurRevertsToCommitted(t *testing.T) {
	s := NewState(greek(), "a")
	s.Edit("Bet")
	s.Blur()
	assert.Equal(t, "Alpha", s.Query())
	assert.False(t, s.IsOpen())
	assert.Equal(t, "a", s.Committed())
}

func TestState_ClearCommitsEmpty(t *testing.T) {
	s := NewState(greek(), "a")
	s.Edit("Alph")

	value, committed := s.Edit("")
	require.True(t, committed)
	assert.Equal(t, "", value)
	assert.Equal(t, "", s.Committed())
	assert.Equal(t, "", s.Query())
	assert.False(t, s.IsOpen())

	s = NewState(greek(), "a")
	_, committed = s.Edit("  ")
	assert.True(t, committed, "whitespace-only text counts as cleared")
	assert.Equal(t, "", s.Committed())
	assert.Equal(t, "  ", s.Query())
}

func TestState_BlankEditOnEmptyFieldKeepsText(t *testing.T) {
	s := NewState(greek(), "")

	_, committed := s.Edit(" ")
	assert.False(t, committed, "nothing to clear")
	_, committed = s.Edit("  ")
	assert.False(t, committed)
	assert.Equal(t, "  ", s.Query())
	assert.False(t, s.IsOpen())

	s.Edit("  G")
	require.True(t, s.IsOpen())
	_, committed = s.Edit("  ")
	assert.True(t, committed, "removing the last non-blank rune clears the query")
}

func TestState_SetValueResyncs(t *testing.T) {
	s := NewState(greek(), "a")
	s.Edit("Ga")

	assert.False(t, s.SetValue("a"), "same value keeps the edit")
	assert.Equal(t, "Ga", s.Query())
	assert.True(t, s.IsOpen())

	assert.True(t, s.SetValue("b"))
	assert.Equal(t, "Beta", s.Query())
	assert.False(t, s.IsOpen())

	s.SetValue("unknown")
	assert.Equal(t, "unknown", s.Query())
}

func TestState_SetOptions(t *testing.T) {
	s := NewState(nil, "b")
	assert.Equal(t, "b", s.Query(), "labels fall back to the raw value until options arrive")

	s.SetOptions(greek())
	assert.Equal(t, "Beta", s.Query())

	s.Edit("a")
	s.MoveDown()
	s.SetOptions(append(greek(), Option{Value: "d", Label: "Delta"}))
	assert.Equal(t, -1, s.Highlighted(), "changed matches reset the highlight")
	assert.Len(t, s.Filtered(), 4)

	s.MoveDown()
	s.SetOptions(append(greek(), Option{Value: "d", Label: "Delta"}, Option{Value: "e", Label: "Epsilon"}))
	assert.Equal(t, 0, s.Highlighted(), "unchanged matches keep the highlight")
}
