package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/hris/pkg/selector"
)

// Picker runs a single selector as a whole program: it quits once a value
// is committed, or when the user aborts with ctrl+c or esc on a closed list.
type Picker struct {
	title   string
	sel     *selector.Model
	styles  Styles
	value   string
	done    bool
	aborted bool
}

// PickerConfig configures a Picker.
type PickerConfig struct {
	Title       string
	Options     []selector.Option
	Value       string
	Placeholder string
	EmptyText   string
	MaxRows     int
	Width       int
	Theme       Theme
}

// NewPicker creates a focused picker.
func NewPicker(cfg PickerConfig) *Picker {
	styles := cfg.Theme.SelectorStyles()
	sel := selector.New(selector.Config{
		ID:          "picker",
		Options:     cfg.Options,
		Value:       cfg.Value,
		Placeholder: cfg.Placeholder,
		EmptyText:   cfg.EmptyText,
		MaxRows:     cfg.MaxRows,
		Width:       cfg.Width,
		Prompt:      "> ",
		Styles:      &styles,
	})
	sel.SetOrigin(0, 1)
	return &Picker{title: cfg.Title, sel: sel, styles: cfg.Theme.Styles(), value: cfg.Value}
}

// Value returns the committed value.
func (m *Picker) Value() string { return m.value }

// Committed reports whether the picker ended on a commit.
func (m *Picker) Committed() bool { return m.done && !m.aborted }

// Aborted reports whether the user quit without committing.
func (m *Picker) Aborted() bool { return m.aborted }

// Init focuses the selector.
func (m *Picker) Init() tea.Cmd { return m.sel.Focus() }

// Update implements tea.Model.
func (m *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" || (msg.String() == "esc" && !m.sel.Captures(msg)) {
			m.done, m.aborted = true, true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.sel.SetWidth(max(10, min(msg.Width, 80)))
		return m, nil
	case selector.CommitMsg:
		m.value = msg.Value
		if msg.Value == "" {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.sel, cmd = m.sel.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Picker) View() tea.View {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
	}
	b.WriteString("\n")
	b.WriteString(m.sel.View())
	if !m.done {
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("type to search • ↑/↓ move • enter pick • esc quit"))
	}
	v := tea.NewView(b.String())
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
