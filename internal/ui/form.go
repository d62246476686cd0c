package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/submit"
	"github.com/oakwood-commons/hris/pkg/logger"
	"github.com/oakwood-commons/hris/pkg/selector"
)

// FieldKind selects the input a form field uses.
type FieldKind int

const (
	TextField FieldKind = iota
	SelectField
)

// FieldSpec describes one form field. Name is the form key posted to the
// server and the key of its validation message.
type FieldSpec struct {
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []selector.Option
	Value       string
	Required    bool
	Disabled    bool
}

type field struct {
	spec  FieldSpec
	input textinput.Model
	sel   *selector.Model
	err   string

	top    int // first row, relative to the form content
	height int // rows from the label through the error line
}

func (f *field) value() string {
	if f.spec.Kind == SelectField {
		return f.sel.Value()
	}
	return strings.TrimSpace(f.input.Value())
}

func (f *field) focus() tea.Cmd {
	if f.spec.Kind == SelectField {
		return f.sel.Focus()
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.spec.Kind == SelectField {
		f.sel.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) disabled() bool {
	return f.spec.Disabled
}

// FormConfig describes a form and where it posts.
type FormConfig struct {
	ID        string
	Title     string
	Route     string
	Params    map[string]string
	Fields    []FieldSpec
	Submitter submit.Submitter
	Context   context.Context
	Theme     Theme
	Selector  config.SelectorConfig
	Width     int
}

// FormDoneMsg reports that a form closed, either after the server accepted
// it or because the user canceled.
type FormDoneMsg struct {
	ID        string
	Submitted bool
	Message   string
}

type submitResultMsg struct {
	seq  int64
	resp submit.Response
	err  error
}

var formSeq atomic.Int64

// Form is a stack of text and selector fields posted to one route.
//
// Keys go to the focused field unless they are form keys. An open selector
// list keeps enter and esc for itself, so esc only cancels the form once no
// dropdown is showing. Mouse presses go to the focused selector first so a
// click on one of its rows commits before focus moves.
type Form struct {
	id     string
	seq    int64
	title  string
	route  string
	params map[string]string
	fields []*field
	focus  int

	submitter submit.Submitter
	ctx       context.Context

	styles     Styles
	width      int
	originX    int
	originY    int
	submitting bool
	message    string
}

// NewForm builds a form from cfg. Call Init to focus the first field.
func NewForm(cfg FormConfig) *Form {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	f := &Form{
		id:        cfg.ID,
		seq:       formSeq.Add(1),
		title:     cfg.Title,
		route:     cfg.Route,
		params:    cfg.Params,
		submitter: cfg.Submitter,
		ctx:       ctx,
		styles:    cfg.Theme.Styles(),
		focus:     -1,
	}
	selStyles := cfg.Theme.SelectorStyles()
	for _, spec := range cfg.Fields {
		fl := &field{spec: spec}
		switch spec.Kind {
		case SelectField:
			placeholder := spec.Placeholder
			if placeholder == "" {
				placeholder = cfg.Selector.Placeholder
			}
			fl.sel = selector.New(selector.Config{
				ID:          spec.Name,
				Options:     spec.Options,
				Value:       spec.Value,
				Placeholder: placeholder,
				EmptyText:   cfg.Selector.EmptyText,
				MaxRows:     cfg.Selector.MaxRows,
				Disabled:    spec.Disabled,
				Styles:      &selStyles,
			})
		default:
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = 512
			ti.SetValue(spec.Value)
			fl.input = ti
		}
		f.fields = append(f.fields, fl)
	}
	width := cfg.Width
	if width <= 0 {
		width = 60
	}
	f.SetWidth(width)
	return f
}

// ID names the form.
func (f *Form) ID() string { return f.id }

// Title is the heading shown on the form.
func (f *Form) Title() string { return f.title }

// Init focuses the first enabled field.
func (f *Form) Init() tea.Cmd {
	return f.focusField(f.nextEnabled(-1, 1))
}

// SetWidth sets the outer width of the form box.
func (f *Form) SetWidth(width int) {
	f.width = width
	inner := f.innerWidth()
	for _, fl := range f.fields {
		if fl.sel != nil {
			fl.sel.SetWidth(inner)
		} else {
			fl.input.SetWidth(max(1, inner-1))
		}
	}
	f.relayout()
}

// SetOrigin records the screen cell of the form box's top-left corner.
func (f *Form) SetOrigin(x, y int) {
	f.originX = x
	f.originY = y
	f.relayout()
}

// Focused returns the name of the focused field.
func (f *Form) Focused() string {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return ""
	}
	return f.fields[f.focus].spec.Name
}

// Value returns the current value of the named field.
func (f *Form) Value(name string) string {
	if fl := f.field(name); fl != nil {
		return fl.value()
	}
	return ""
}

// Error returns the message shown under the named field.
func (f *Form) Error(name string) string {
	if fl := f.field(name); fl != nil {
		return fl.err
	}
	return ""
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool { return f.submitting }

// Values returns the form as posted.
func (f *Form) Values() url.Values {
	v := url.Values{}
	for _, fl := range f.fields {
		v.Set(fl.spec.Name, fl.value())
	}
	return v
}

// Update handles keys, mouse presses, selector commits and submit results.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	cmd := f.update(msg)
	f.relayout()
	return f, cmd
}

func (f *Form) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return f.handleKey(msg)
	case tea.MouseClickMsg:
		return f.handleClick(msg)
	case tea.MouseReleaseMsg:
		var cmds []tea.Cmd
		for _, fl := range f.fields {
			if fl.sel != nil {
				var cmd tea.Cmd
				fl.sel, cmd = fl.sel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	case selector.CommitMsg:
		if fl := f.field(msg.ID); fl != nil {
			fl.err = ""
		}
		return nil
	case submitResultMsg:
		if msg.seq != f.seq {
			return nil
		}
		return f.handleResult(msg)
	}
	return f.updateFocused(msg)
}

func (f *Form) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if f.submitting {
		return nil
	}
	if fl := f.focused(); fl != nil && fl.sel != nil && fl.sel.Captures(msg) {
		return f.updateFocused(msg)
	}
	switch Lookup(FormKeyBindings, msg) {
	case ActionNextField:
		return f.focusField(f.nextEnabled(f.focus, 1))
	case ActionPrevField:
		return f.focusField(f.nextEnabled(f.focus, -1))
	case ActionSubmit:
		return f.submit()
	case ActionCancel:
		id := f.id
		return func() tea.Msg { return FormDoneMsg{ID: id} }
	}
	if msg.String() == "enter" {
		if next := f.nextEnabled(f.focus, 1); next > f.focus {
			return f.focusField(next)
		}
		return f.submit()
	}
	if fl := f.focused(); fl != nil {
		fl.err = ""
	}
	return f.updateFocused(msg)
}

// handleClick routes a press to the focused selector first. Only when the
// press lands outside it does focus move to the field under the pointer.
func (f *Form) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	if f.submitting {
		return nil
	}
	mouse := msg.Mouse()
	if fl := f.focused(); fl != nil && fl.sel != nil && fl.sel.Contains(mouse.X, mouse.Y) {
		var cmd tea.Cmd
		fl.sel, cmd = fl.sel.Update(msg)
		return cmd
	}
	i := f.fieldAt(mouse.Y)
	if i < 0 || f.fields[i].disabled() {
		return nil
	}
	if i == f.focus {
		return nil
	}
	return f.focusField(i)
}

func (f *Form) updateFocused(msg tea.Msg) tea.Cmd {
	fl := f.focused()
	if fl == nil {
		return nil
	}
	var cmd tea.Cmd
	if fl.sel != nil {
		fl.sel, cmd = fl.sel.Update(msg)
		return cmd
	}
	fl.input, cmd = fl.input.Update(msg)
	return cmd
}

func (f *Form) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	if !f.checkRequired() {
		f.message = "Please fill in the required fields."
		return nil
	}
	if f.submitter == nil {
		f.message = "No server configured."
		return nil
	}
	f.submitting = true
	f.message = "Submitting…"

	req := submit.Request{Route: f.route, Params: f.params, Form: f.Values()}
	seq, sub, ctx := f.seq, f.submitter, f.ctx
	logger.FromContext(ctx).V(1).Info("submitting form", logger.RouteKey, f.route)
	return func() tea.Msg {
		resp, err := sub.Submit(ctx, req)
		return submitResultMsg{seq: seq, resp: resp, err: err}
	}
}

func (f *Form) checkRequired() bool {
	ok := true
	for _, fl := range f.fields {
		if fl.spec.Required && fl.value() == "" {
			fl.err = fl.spec.Label + " is required."
			ok = false
		}
	}
	return ok
}

func (f *Form) handleResult(msg submitResultMsg) tea.Cmd {
	f.submitting = false
	if msg.err == nil {
		text := msg.resp.Message
		if text == "" {
			text = "Saved."
		}
		id := f.id
		return func() tea.Msg { return FormDoneMsg{ID: id, Submitted: true, Message: text} }
	}

	var verr *submit.ValidationError
	if errors.As(msg.err, &verr) {
		first := -1
		for i, fl := range f.fields {
			fl.err = verr.Field(fl.spec.Name)
			if fl.err != "" && first < 0 {
				first = i
			}
		}
		f.message = verr.Message
		if f.message == "" {
			f.message = "Please correct the highlighted fields."
		}
		if first >= 0 && first != f.focus {
			return f.focusField(first)
		}
		return nil
	}
	f.message = msg.err.Error()
	logger.FromContext(f.ctx).Error(msg.err, "form submission failed", logger.RouteKey, f.route)
	return nil
}

func (f *Form) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(f.fields) {
		return nil
	}
	if f.focus >= 0 && f.focus < len(f.fields) && f.focus != i {
		f.fields[f.focus].blur()
	}
	f.focus = i
	return f.fields[i].focus()
}

// nextEnabled steps from i in direction dir, wrapping, and skips disabled
// fields. It returns i when no other field can take focus.
func (f *Form) nextEnabled(i, dir int) int {
	n := len(f.fields)
	if n == 0 {
		return -1
	}
	j := i
	for range n {
		j = (j + dir + n) % n
		if !f.fields[j].disabled() {
			return j
		}
	}
	return i
}

func (f *Form) focused() *field {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return f.fields[f.focus]
}

func (f *Form) field(name string) *field {
	for _, fl := range f.fields {
		if fl.spec.Name == name {
			return fl
		}
	}
	return nil
}

func (f *Form) fieldAt(screenY int) int {
	_, top := f.contentOrigin()
	y := screenY - top
	for i, fl := range f.fields {
		if y >= fl.top && y < fl.top+fl.height {
			return i
		}
	}
	return -1
}

func (f *Form) innerWidth() int {
	return max(10, f.width-f.styles.Form.GetHorizontalFrameSize())
}

func (f *Form) contentOrigin() (int, int) {
	s := f.styles.Form
	return f.originX + s.GetBorderLeftSize() + s.GetPaddingLeft(), f.originY + s.GetBorderTopSize() + s.GetPaddingTop()
}

// relayout recomputes field rows from the current state. An open list pushes
// the fields below it down.
func (f *Form) relayout() {
	x, y := f.contentOrigin()
	row := 2 // title and a blank line
	for _, fl := range f.fields {
		fl.top = row
		inputRows := 1
		if fl.sel != nil {
			inputRows = lipgloss.Height(fl.sel.View())
			fl.sel.SetOrigin(x, y+row+1)
		}
		fl.height = 1 + inputRows
		if fl.err != "" {
			fl.height++
		}
		row += fl.height + 1
	}
}

// View renders the form box.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.styles.Title.Render(f.title))
	b.WriteString("\n\n")
	for i, fl := range f.fields {
		label := fl.spec.Label
		if fl.spec.Required {
			label += " *"
		}
		if i == f.focus {
			b.WriteString(f.styles.FocusedLabel.Render(label))
		} else {
			b.WriteString(f.styles.Label.Render(label))
		}
		b.WriteString("\n")
		if fl.sel != nil {
			b.WriteString(fl.sel.View())
		} else {
			b.WriteString(fl.input.View())
		}
		b.WriteString("\n")
		if fl.err != "" {
			b.WriteString(f.styles.FieldError.Render(fl.err))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if f.message != "" {
		if f.submitting {
			b.WriteString(f.styles.Status.Render(f.message))
		} else {
			b.WriteString(f.styles.StatusError.Render(f.message))
		}
		b.WriteString("\n")
	}
	b.WriteString(f.styles.Help.Render(HelpLine(formHelp)))
	return f.styles.Form.Width(f.width).Render(b.String())
}
