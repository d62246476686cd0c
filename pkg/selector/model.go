package selector

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	runewidth "github.com/mattn/go-runewidth"
)

const (
	// DefaultEmptyText is shown in the list when the query matches nothing.
	DefaultEmptyText = "No results found."
	// DefaultMaxRows is the number of matches visible before the list scrolls.
	DefaultMaxRows = 8
)

// Config describes a selector instance. Options and Value are the caller's
// snapshot; later changes go through SetOptions and SetValue.
type Config struct {
	ID          string
	Options     []Option
	Value       string
	Placeholder string
	EmptyText   string
	Prompt      string
	Disabled    bool
	MaxRows     int
	Width       int
	NoColor     bool
	Styles      *Styles

	// OnCommit is called with the committed value: an option's value, or ""
	// when the user clears the field. When nil, a CommitMsg is emitted instead.
	OnCommit func(value string) tea.Cmd
}

// CommitMsg reports a commit from a selector configured without OnCommit.
type CommitMsg struct {
	ID    string
	Value string
}

// Model is the Bubble Tea selector component: a single-line text input with an
// inline list of matches rendered below it.
//
// Mouse handling follows a commit-before-dismiss rule. A press inside the list
// takes pointer ownership and a press on a match commits immediately. A Blur
// that arrives while the pointer is owned is held until the release, so
// moving focus elsewhere can never undo or race a pointer commit.
type Model struct {
	id        string
	state     State
	input     textinput.Model
	styles    Styles
	emptyText string
	maxRows   int
	width     int
	disabled  bool
	focused   bool
	onCommit  func(string) tea.Cmd

	offset  int
	originX int
	originY int

	pointerOwned bool
	pendingBlur  bool
}

// New creates a blurred selector from cfg.
func New(cfg Config) *Model {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = cfg.Prompt

	m := &Model{
		id:        cfg.ID,
		state:     NewState(cfg.Options, cfg.Value),
		input:     ti,
		emptyText: cfg.EmptyText,
		maxRows:   cfg.MaxRows,
		disabled:  cfg.Disabled,
		onCommit:  cfg.OnCommit,
	}
	if m.emptyText == "" {
		m.emptyText = DefaultEmptyText
	}
	if m.maxRows <= 0 {
		m.maxRows = DefaultMaxRows
	}
	switch {
	case cfg.Styles != nil:
		m.styles = *cfg.Styles
	case cfg.NoColor:
		m.styles = PlainStyles()
	default:
		m.styles = DefaultStyles()
	}
	width := cfg.Width
	if width <= 0 {
		width = 40
	}
	m.SetWidth(width)
	m.syncInput()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// ID returns the identifier given in Config.
func (m *Model) ID() string { return m.id }

// Value returns the committed value.
func (m *Model) Value() string { return m.state.Committed() }

// Label returns the display label of the committed value.
func (m *Model) Label() string { return m.state.Label() }

// Query returns the text currently in the field.
func (m *Model) Query() string { return m.state.Query() }

// IsOpen reports whether the suggestion list is visible.
func (m *Model) IsOpen() bool { return m.state.IsOpen() }

// Highlighted returns the keyboard highlight within Filtered, or -1.
func (m *Model) Highlighted() int { return m.state.Highlighted() }

// Filtered returns the current matches.
func (m *Model) Filtered() []Option { return m.state.Filtered() }

// Disabled reports whether the selector ignores input.
func (m *Model) Disabled() bool { return m.disabled }

// SetOptions replaces the option snapshot.
func (m *Model) SetOptions(options []Option) {
	m.state.SetOptions(options)
	if !m.state.IsOpen() {
		m.syncInput()
	}
	m.clampOffset()
}

// SetValue applies a committed value supplied by the caller.
func (m *Model) SetValue(value string) {
	if m.state.SetValue(value) {
		m.syncInput()
		m.offset = 0
	}
}

// SetDisabled enables or disables the selector. Disabling drops focus.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.pointerOwned = false
		m.pendingBlur = false
		m.finishBlur()
	}
}

// SetWidth sets the rendered width, prompt included.
func (m *Model) SetWidth(width int) {
	m.width = width
	inner := width - runewidth.StringWidth(m.input.Prompt) - 1
	if inner < 1 {
		inner = 1
	}
	m.input.SetWidth(inner)
}

// SetStyles replaces the list styles.
func (m *Model) SetStyles(styles Styles) { m.styles = styles }

// SetOrigin records the screen position of the selector's top-left cell so
// mouse events can be mapped onto list rows.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Focus gives the selector keyboard focus.
func (m *Model) Focus() tea.Cmd {
	if m.disabled {
		return nil
	}
	m.focused = true
	m.pendingBlur = false
	return m.input.Focus()
}

// Blur removes focus and reverts any uncommitted edit. While a pointer press
// inside the list is unresolved the blur is deferred to the release.
func (m *Model) Blur() {
	if !m.focused {
		return
	}
	if m.pointerOwned {
		m.pendingBlur = true
		return
	}
	m.finishBlur()
}

// Focused reports whether the selector has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// Captures reports whether msg is a navigation key the open list consumes.
// Parents use it to decide whether enter and esc belong to the selector or
// to the surrounding form.
func (m *Model) Captures(msg tea.KeyPressMsg) bool {
	if !m.focused || m.disabled || !m.state.IsOpen() {
		return false
	}
	switch msg.String() {
	case "up", "down", "enter", "esc":
		return true
	}
	return false
}

// Contains reports whether the screen cell (x, y) lies on the input line or
// on the open list.
func (m *Model) Contains(x, y int) bool {
	if y == m.originY && x >= m.originX && (m.width <= 0 || x < m.originX+m.width) {
		return true
	}
	_, ok := m.rowAt(x-m.originX, y-m.originY)
	return ok
}

// Update handles keyboard, mouse and focus messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.disabled {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		return m, m.handlePress(msg.Mouse())
	case tea.MouseReleaseMsg:
		m.handleRelease()
		return m, nil
	case tea.BlurMsg:
		m.Blur()
		return m, nil
	case tea.KeyPressMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)
	}

	if !m.focused {
		return m, nil
	}
	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "down":
		m.state.MoveDown()
		m.scrollToHighlight()
		return nil
	case "up":
		m.state.MoveUp()
		m.scrollToHighlight()
		return nil
	case "enter":
		if value, ok := m.state.Enter(); ok {
			return m.committed(value)
		}
		return nil
	case "esc":
		m.state.Escape()
		m.syncInput()
		m.offset = 0
		return nil
	}
	return m.updateInput(msg)
}

// updateInput forwards msg to the text input and routes any resulting change
// of its text through the state, whether it came from a key or a paste.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()
	if after == before {
		return cmd
	}

	m.offset = 0
	if value, ok := m.state.Edit(after); ok {
		return tea.Batch(cmd, m.committed(value))
	}
	return cmd
}

func (m *Model) handlePress(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	row, ok := m.rowAt(mouse.X-m.originX, mouse.Y-m.originY)
	if !ok {
		return nil
	}
	m.pointerOwned = true
	if value, ok := m.state.Pick(row); ok {
		return m.committed(value)
	}
	return nil
}

func (m *Model) handleRelease() {
	if !m.pointerOwned {
		return
	}
	m.pointerOwned = false
	if m.pendingBlur {
		m.pendingBlur = false
		m.finishBlur()
	}
}

func (m *Model) finishBlur() {
	m.focused = false
	m.state.Blur()
	m.input.Blur()
	m.syncInput()
	m.offset = 0
}

func (m *Model) committed(value string) tea.Cmd {
	m.syncInput()
	m.offset = 0
	if m.onCommit != nil {
		return m.onCommit(value)
	}
	id := m.id
	return func() tea.Msg {
		return CommitMsg{ID: id, Value: value}
	}
}

func (m *Model) syncInput() {
	m.input.SetValue(m.state.Query())
	m.input.CursorEnd()
}

// rowAt maps a position relative to the origin onto an index into Filtered.
// Row 0 of the list sits on the line below the input.
func (m *Model) rowAt(x, y int) (int, bool) {
	rows := m.visibleRows()
	if rows == 0 || y < 1 || y > rows || x < 0 || (m.width > 0 && x >= m.width) {
		return 0, false
	}
	return m.offset + y - 1, true
}

func (m *Model) visibleRows() int {
	if !m.state.IsOpen() {
		return 0
	}
	n := len(m.state.Filtered())
	if n == 0 {
		return 1
	}
	return min(n, m.maxRows)
}

func (m *Model) scrollToHighlight() {
	h := m.state.Highlighted()
	switch {
	case h < 0:
		m.offset = 0
	case h < m.offset:
		m.offset = h
	case h >= m.offset+m.maxRows:
		m.offset = h - m.maxRows + 1
	}
}

func (m *Model) clampOffset() {
	n := len(m.state.Filtered())
	if m.offset > 0 && m.offset+m.maxRows > n {
		m.offset = max(0, n-m.maxRows)
	}
}

// View renders the input line followed by the open list, if any.
func (m *Model) View() string {
	if m.disabled {
		text := m.state.Query()
		if text == "" {
			text = m.input.Placeholder
		}
		return m.styles.Disabled.Render(m.fit(m.input.Prompt + text))
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	if !m.state.IsOpen() {
		return b.String()
	}

	filtered := m.state.Filtered()
	if len(filtered) == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Empty.Render(m.fit("  " + m.emptyText)))
		return b.String()
	}

	end := min(len(filtered), m.offset+m.maxRows)
	highlighted := m.state.Highlighted()
	for i := m.offset; i < end; i++ {
		marker, style := "  ", m.styles.Row
		if i == highlighted {
			marker, style = "› ", m.styles.Highlighted
		}
		b.WriteString("\n")
		b.WriteString(style.Render(m.fit(marker + filtered[i].Label)))
	}
	if len(filtered) > m.maxRows {
		b.WriteString("\n")
		b.WriteString(m.styles.Count.Render(m.fit(fmt.Sprintf("  %d-%d of %d", m.offset+1, end, len(filtered)))))
	}
	return b.String()
}

// fit truncates or pads text to the configured width.
func (m *Model) fit(text string) string {
	if m.width <= 0 {
		return text
	}
	if runewidth.StringWidth(text) > m.width {
		text = runewidth.Truncate(text, m.width, "…")
	}
	return runewidth.FillRight(text, m.width)
}
