package selector

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	values []string
}

func (r *commitRecorder) onCommit(value string) tea.Cmd {
	r.values = append(r.values, value)
	return nil
}

func newTestModel(t *testing.T, value string) (*Model, *commitRecorder) {
	t.Helper()
	rec := &commitRecorder{}
	m := New(Config{
		ID:        "division",
		Options:   greek(),
		Value:     value,
		EmptyText: "Nothing matches",
		NoColor:   true,
		Width:     30,
		OnCommit:  rec.onCommit,
	})
	m.Focus()
	return m, rec
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(m *Model, code rune) {
	m.Update(tea.KeyPressMsg{Code: code})
}

func TestModel_TypeDownEnterCommits(t *testing.T) {
	m, rec := newTestModel(t, "")

	typeText(m, "a")
	require.True(t, m.IsOpen())
	assert.Len(t, m.Filtered(), 3)
	assert.Equal(t, -1, m.Highlighted())
	assert.Contains(t, m.View(), "Gamma")

	press(m, tea.KeyDown)
	assert.Equal(t, 0, m.Highlighted())
	assert.Contains(t, m.View(), "› Alpha")

	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"a"}, rec.values)
	assert.Equal(t, "a", m.Value())
	assert.Equal(t, "Alpha", m.Query())
	assert.False(t, m.IsOpen())
	assert.NotContains(t, m.View(), "Gamma")
}

func TestModel_EnterWithoutHighlightDoesNothing(t *testing.T) {
	m, rec := newTestModel(t, "")
	typeText(m, "xyz")

	require.True(t, m.IsOpen())
	assert.Contains(t, m.View(), "Nothing matches")

	press(m, tea.KeyEnter)
	assert.Empty(t, rec.values)
	assert.True(t, m.IsOpen())
}

func TestModel_BackspaceToEmptyCommitsOnce(t *testing.T) {
	m, rec := newTestModel(t, "a")
	require.Equal(t, "Alpha", m.Query())

	for range "Alpha" {
		press(m, tea.KeyBackspace)
	}
	assert.Equal(t, []string{""}, rec.values, "only the final backspace clears the field")
	assert.Equal(t, "", m.Value())
	assert.False(t, m.IsOpen())

	press(m, tea.KeyBackspace)
	assert.Equal(t, []string{""}, rec.values, "backspace on an empty field is not a clearing action")
}

func TestModel_CtrlUClearsAndCommits(t *testing.T) {
	m, rec := newTestModel(t, "b")
	m.Update(tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl})
	assert.Equal(t, []string{""}, rec.values)
	assert.Equal(t, "", m.Query())
}

func TestModel_PasteOpensList(t *testing.T) {
	m, rec := newTestModel(t, "")

	m.Update(tea.PasteMsg{Content: "Gam"})
	assert.Equal(t, "Gam", m.Query())
	require.True(t, m.IsOpen())
	require.Len(t, m.Filtered(), 1)

	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"c"}, rec.values)
	assert.Equal(t, "c", m.Value())
	assert.Equal(t, "Gamma", m.Query())
}

func TestModel_SpacesOnEmptyFieldDoNotCommit(t *testing.T) {
	m, rec := newTestModel(t, "")
	typeText(m, "  ")

	assert.Empty(t, rec.values)
	assert.Equal(t, "  ", m.Query())
	assert.False(t, m.IsOpen())
}

func TestModel_LongLabelSurvivesSync(t *testing.T) {
	long := strings.Repeat("x", 300)
	m := New(Config{
		Options: []Option{{Value: "v", Label: long}},
		Value:   "v",
		NoColor: true,
	})
	assert.Equal(t, long, m.Query())
	assert.Equal(t, long, m.input.Value())
}

func TestModel_EscapeReverts(t *testing.T) {
	m, rec := newTestModel(t, "b")
	typeText(m, "xx")
	press(m, tea.KeyDown)

	press(m, tea.KeyEscape)
	assert.Empty(t, rec.values)
	assert.Equal(t, "Beta", m.Query())
	assert.False(t, m.IsOpen())
}

func TestModel_BlurReverts(t *testing.T) {
	m, rec := newTestModel(t, "c")
	typeText(m, "zz")
	m.Blur()

	assert.False(t, m.Focused())
	assert.Empty(t, rec.values)
	assert.Equal(t, "Gamma", m.Query())
	assert.False(t, m.IsOpen())

	typeText(m, "more")
	assert.Equal(t, "Gamma", m.Query(), "blurred selector ignores keys")
}

func TestModel_TerminalFocusLossBlurs(t *testing.T) {
	m, _ := newTestModel(t, "a")
	typeText(m, "q")
	m.Update(tea.BlurMsg{})
	assert.False(t, m.Focused())
	assert.Equal(t, "Alpha", m.Query())
}

func TestModel_PointerCommitWinsOverBlur(t *testing.T) {
	m, rec := newTestModel(t, "")
	m.SetOrigin(4, 10)

	typeText(m, "a")
	press(m, tea.KeyDown) // highlight Alpha; the click must ignore it

	// Row 0 is on the line under the input, so Gamma (index 2) is at y=13.
	m.Update(tea.MouseClickMsg{X: 6, Y: 13, Button: tea.MouseLeft})
	assert.Equal(t, []string{"c"}, rec.values)
	assert.Equal(t, "Gamma", m.Query())
	assert.False(t, m.IsOpen())

	// The parent moves focus before the release arrives.
	m.Blur()
	assert.True(t, m.Focused(), "blur is held while the pointer is owned")

	m.Update(tea.MouseReleaseMsg{X: 6, Y: 13, Button: tea.MouseLeft})
	assert.False(t, m.Focused())
	assert.Equal(t, "Gamma", m.Query(), "held blur does not revert the pointer commit")
	assert.Equal(t, "c", m.Value())
	assert.Equal(t, []string{"c"}, rec.values, "exactly one commit")
}

func TestModel_PressOutsideListIgnored(t *testing.T) {
	m, rec := newTestModel(t, "")
	typeText(m, "a")

	m.Update(tea.MouseClickMsg{X: 2, Y: 9, Button: tea.MouseLeft})
	m.Update(tea.MouseClickMsg{X: 2, Y: 2, Button: tea.MouseRight})
	assert.Empty(t, rec.values)
	assert.True(t, m.IsOpen())

	assert.True(t, m.Contains(0, 0), "input line")
	assert.True(t, m.Contains(3, 3), "last row")
	assert.False(t, m.Contains(3, 4))
	assert.False(t, m.Contains(31, 1), "beyond the width")
}

func TestModel_PressOnEmptyRowCommitsNothing(t *testing.T) {
	m, rec := newTestModel(t, "a")
	typeText(m, "zzz")
	m.Update(tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	m.Blur()
	m.Update(tea.MouseReleaseMsg{X: 1, Y: 1})

	assert.Empty(t, rec.values)
	assert.Equal(t, "Alpha", m.Query())
	assert.False(t, m.Focused())
}

func TestModel_CommitMsgWithoutCallback(t *testing.T) {
	m := New(Config{ID: "role", Options: greek(), NoColor: true})
	m.Focus()
	typeText(m, "bet")
	press(m, tea.KeyDown)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommitMsg{ID: "role", Value: "b"}, cmd())
}

func TestModel_Disabled(t *testing.T) {
	rec := &commitRecorder{}
	m := New(Config{Options: greek(), Value: "a", Disabled: true, NoColor: true, OnCommit: rec.onCommit})

	assert.Nil(t, m.Focus())
	assert.False(t, m.Focused())
	typeText(m, "x")
	assert.Equal(t, "Alpha", m.Query())
	assert.Contains(t, m.View(), "Alpha")
	assert.Empty(t, rec.values)

	m.SetDisabled(false)
	m.Focus()
	m.SetDisabled(true)
	assert.False(t, m.Focused(), "disabling drops focus")
}

func TestModel_Captures(t *testing.T) {
	m, _ := newTestModel(t, "")
	enter := tea.KeyPressMsg{Code: tea.KeyEnter}
	esc := tea.KeyPressMsg{Code: tea.KeyEscape}
	tab := tea.KeyPressMsg{Code: tea.KeyTab}

	assert.False(t, m.Captures(enter), "closed list leaves enter to the parent")
	typeText(m, "a")
	assert.True(t, m.Captures(enter))
	assert.True(t, m.Captures(esc))
	assert.False(t, m.Captures(tab))
}

func TestModel_ExternalValueAndOptions(t *testing.T) {
	m, rec := newTestModel(t, "")
	m.SetOptions(nil)
	m.SetValue("b")
	assert.Equal(t, "b", m.Query(), "unknown value shows itself")

	m.SetOptions(greek())
	assert.Equal(t, "Beta", m.Query())
	assert.Empty(t, rec.values, "external changes are not commits")
}

func TestModel_ListScrollsWithHighlight(t *testing.T) {
	options := make([]Option, 0, 20)
	for i := 1; i <= 20; i++ {
		options = append(options, Option{Value: fmt.Sprintf("e%02d", i), Label: fmt.Sprintf("Employee %02d", i)})
	}
	m := New(Config{Options: options, MaxRows: 5, NoColor: true, Width: 30})
	m.Focus()
	typeText(m, "emp")

	view := m.View()
	assert.Contains(t, view, "1-5 of 20")
	assert.Equal(t, 7, strings.Count(view, "\n")+1, "input, five rows, count")

	for i := 0; i < 7; i++ {
		press(m, tea.KeyDown)
	}
	assert.Equal(t, 6, m.Highlighted())
	view = m.View()
	assert.Contains(t, view, "3-7 of 20")
	assert.Contains(t, view, "› Employee 07")
	assert.NotContains(t, view, "Employee 02")

	press(m, tea.KeyUp)
	press(m, tea.KeyUp)
	press(m, tea.KeyUp)
	press(m, tea.KeyUp) // index 2, top of window
	press(m, tea.KeyUp) // index 1, scrolls up
	assert.Contains(t, m.View(), "2-6 of 20")
}

func TestModel_LongLabelsAreTruncated(t *testing.T) {
	m := New(Config{
		Options: []Option{{Value: "x", Label: "Assistant Director of Talent Acquisition and Onboarding"}},
		Width:   20,
		NoColor: true,
	})
	m.Focus()
	typeText(m, "talent")
	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "…")
}
