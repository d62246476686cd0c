package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/internal/submit"
	"github.com/oakwood-commons/hris/internal/ui/table"
	"github.com/oakwood-commons/hris/pkg/logger"
)

// Mode controls where the dashboard routes key presses.
type Mode int

const (
	// BrowseMode moves the table cursor and takes page shortcuts.
	BrowseMode Mode = iota
	// FilterMode edits the table filter.
	FilterMode
	// FormMode hands input to the open form.
	FormMode
)

// headerRows is the title line, the tab bar and a blank line.
const headerRows = 3

// DashboardConfig wires a dashboard to its data and services.
type DashboardConfig struct {
	Title     string
	Page      *hris.PageData
	Context   context.Context
	Submitter submit.Submitter
	Theme     Theme
	Selector  config.SelectorConfig
}

type archiveResultMsg struct {
	letter string
	resp   submit.Response
	err    error
}

// Dashboard is the role dashboard: a tab per page the role may open, stat
// cards and a filterable record table, with the page's form on demand.
type Dashboard struct {
	title  string
	data   *hris.PageData
	pages  []hris.Page
	active int
	tables map[hris.Page]*table.Model[table.Record]

	mode   Mode
	filter textinput.Model
	form   *Form
	status StatusModel

	ctx       context.Context
	submitter submit.Submitter
	theme     Theme
	styles    Styles
	selector  config.SelectorConfig

	width  int
	height int
}

// NewDashboard builds the dashboard for cfg.Page's role.
func NewDashboard(cfg DashboardConfig) *Dashboard {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter rows"

	d := &Dashboard{
		title:     cfg.Title,
		data:      cfg.Page,
		pages:     hris.Pages(cfg.Page.Role),
		tables:    map[hris.Page]*table.Model[table.Record]{},
		filter:    fi,
		ctx:       ctx,
		submitter: cfg.Submitter,
		theme:     cfg.Theme,
		styles:    cfg.Theme.Styles(),
		selector:  cfg.Selector,
		width:     80,
		height:    24,
	}
	if d.title == "" {
		d.title = "HRIS"
	}
	d.loadTable()
	return d
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd { return nil }

// Page returns the page on screen.
func (d *Dashboard) Page() hris.Page {
	if len(d.pages) == 0 {
		return hris.PageOverview
	}
	return d.pages[d.active]
}

// Mode returns the input mode.
func (d *Dashboard) Mode() Mode { return d.mode }

// Form returns the open form, if any.
func (d *Dashboard) Form() *Form { return d.form }

// Status returns the status line.
func (d *Dashboard) Status() StatusModel { return d.status }

// Table returns the record table of the page on screen.
func (d *Dashboard) Table() *table.Model[table.Record] { return d.tables[d.Page()] }

// SetSize lays the dashboard out for a width x height terminal.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.status.Width = width
	d.filter.SetWidth(max(10, width-4))
	d.layout()
}

// Update routes msg by mode.
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.SetSize(msg.Width, msg.Height)
		return d, nil
	case FormDoneMsg:
		d.closeForm()
		if msg.Submitted {
			d.status.Set(StatusSuccess, msg.Message)
		} else {
			d.status.Clear()
		}
		return d, nil
	case archiveResultMsg:
		d.handleArchived(msg)
		return d, nil
	}

	switch d.mode {
	case FormMode:
		var cmd tea.Cmd
		d.form, cmd = d.form.Update(msg)
		return d, cmd
	case FilterMode:
		if key, ok := msg.(tea.KeyPressMsg); ok {
			return d, d.handleFilterKey(key)
		}
		var cmd tea.Cmd
		d.filter, cmd = d.filter.Update(msg)
		return d, cmd
	}

	if key, ok := msg.(tea.KeyPressMsg); ok {
		return d, d.handleKey(key)
	}
	return d, nil
}

func (d *Dashboard) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if n, ok := tabNumber(msg); ok {
		if n < len(d.pages) {
			d.switchTo(n)
		}
		return nil
	}
	switch Lookup(DashboardKeyBindings, msg) {
	case ActionQuit:
		return tea.Quit
	case ActionNextTab:
		d.switchTo((d.active + 1) % len(d.pages))
		return nil
	case ActionPrevTab:
		d.switchTo((d.active - 1 + len(d.pages)) % len(d.pages))
		return nil
	case ActionFilter:
		d.mode = FilterMode
		d.filter.SetValue(d.Table().Filter())
		d.filter.CursorEnd()
		d.layout()
		return d.filter.Focus()
	case ActionNew:
		return d.openForm()
	case ActionArchive:
		return d.archive()
	case ActionCancel:
		if t := d.Table(); t.Filter() != "" {
			t.ClearFilter()
			d.layout()
		}
		d.status.Clear()
		return nil
	}
	var cmd tea.Cmd
	d.tables[d.Page()], cmd = d.Table().Update(msg)
	return cmd
}

func (d *Dashboard) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		d.mode = BrowseMode
		d.filter.Blur()
		d.layout()
		return nil
	case "esc":
		d.mode = BrowseMode
		d.filter.Blur()
		d.filter.SetValue("")
		d.Table().ClearFilter()
		d.layout()
		return nil
	case "up", "down":
		var cmd tea.Cmd
		d.tables[d.Page()], cmd = d.Table().Update(msg)
		return cmd
	}
	var cmd tea.Cmd
	d.filter, cmd = d.filter.Update(msg)
	d.Table().SetFilter(d.filter.Value())
	return cmd
}

func (d *Dashboard) switchTo(i int) {
	if i == d.active || i < 0 || i >= len(d.pages) {
		return
	}
	d.active = i
	d.status.Clear()
	d.loadTable()
	d.layout()
}

func (d *Dashboard) loadTable() {
	page := d.Page()
	if _, ok := d.tables[page]; ok {
		return
	}
	collection := page.Collection()
	t := table.NewRecordModel(hris.Columns(collection))
	t.SetNoColor(d.theme.NoColor)
	if !d.theme.NoColor {
		t.SetColors(d.theme.Accent, nil, d.theme.Foreground, d.theme.HighlightBG)
	}
	records, err := d.data.Records(collection)
	if err != nil {
		d.status.Set(StatusError, err.Error())
	}
	t.SetRows(records)
	d.tables[page] = t
	d.layout()
}

func (d *Dashboard) reloadTable() {
	page := d.Page()
	t, ok := d.tables[page]
	if !ok {
		d.loadTable()
		return
	}
	records, err := d.data.Records(page.Collection())
	if err != nil {
		d.status.Set(StatusError, err.Error())
		return
	}
	cursor := t.Cursor()
	t.SetRows(records)
	if cursor < len(t.Rows()) {
		t.SetCursor(cursor)
	}
	d.layout()
}

func (d *Dashboard) openForm() tea.Cmd {
	form, ok := FormFor(d.Page(), d.data, FormDeps{
		Context:   d.ctx,
		Submitter: d.submitter,
		Theme:     d.theme,
		Selector:  d.selector,
		Width:     min(72, d.width),
	})
	if !ok {
		d.status.Set(StatusInfo, fmt.Sprintf("Nothing to create on %s.", d.Page().Title()))
		return nil
	}
	d.form = form
	d.mode = FormMode
	d.status.Clear()
	d.form.SetOrigin(0, headerRows)
	logger.FromContext(d.ctx).V(1).Info("form opened", logger.PageKey, string(d.Page()))
	return d.form.Init()
}

func (d *Dashboard) closeForm() {
	d.form = nil
	d.mode = BrowseMode
	d.layout()
}

func (d *Dashboard) archive() tea.Cmd {
	if d.Page() != hris.PageLetters {
		return nil
	}
	id, ok := table.SelectedID(d.Table())
	if !ok {
		d.status.Set(StatusInfo, "No letter selected.")
		return nil
	}
	letter, found := d.data.Letter(id)
	if found && letter.Archived {
		d.status.Set(StatusInfo, fmt.Sprintf("%q is already archived.", letter.Subject))
		return nil
	}
	if d.submitter == nil {
		d.status.Set(StatusError, "No server configured.")
		return nil
	}
	d.status.Set(StatusInfo, "Archiving…")
	sub, ctx := d.submitter, d.ctx
	req := submit.Request{Route: RouteLettersArchive, Params: map[string]string{"letter": id}}
	return func() tea.Msg {
		resp, err := sub.Submit(ctx, req)
		return archiveResultMsg{letter: id, resp: resp, err: err}
	}
}

func (d *Dashboard) handleArchived(msg archiveResultMsg) {
	if msg.err != nil {
		logger.FromContext(d.ctx).Error(msg.err, "archive failed", logger.RouteKey, RouteLettersArchive)
		d.status.Set(StatusError, "Archive failed: "+msg.err.Error())
		return
	}
	for i := range d.data.Letters {
		if d.data.Letters[i].ID == msg.letter {
			d.data.Letters[i].Archived = true
		}
	}
	text := msg.resp.Message
	if text == "" {
		text = "Letter archived."
	}
	d.status.Set(StatusSuccess, text)
	if d.Page() == hris.PageLetters {
		d.reloadTable()
	}
}

// layout sizes the table to the rows the cards and chrome leave over.
func (d *Dashboard) layout() {
	t, ok := d.tables[d.Page()]
	if !ok {
		return
	}
	used := headerRows + lipgloss.Height(d.renderCards()) + 1 + 2 // cards, gap, status and help
	if d.mode == FilterMode || t.Filter() != "" {
		used++
	}
	bodyRows := max(3, d.height-used-2) // table header and rule
	t.Fit(d.width)
	t.SetSize(d.width, bodyRows)
}

// View renders the dashboard.
func (d *Dashboard) View() string {
	var b strings.Builder
	b.WriteString(d.renderHeader())
	b.WriteString("\n")
	b.WriteString(d.renderTabs())
	b.WriteString("\n\n")

	if d.mode == FormMode && d.form != nil {
		b.WriteString(d.form.View())
		b.WriteString("\n")
		b.WriteString(d.status.View(d.styles))
		return b.String()
	}

	b.WriteString(d.renderCards())
	b.WriteString("\n\n")
	t := d.Table()
	if d.mode == FilterMode {
		b.WriteString(d.filter.View())
		b.WriteString("\n")
	} else if t.Filter() != "" {
		b.WriteString(d.styles.Help.Render(fmt.Sprintf("/ %s (%d of %d)", t.Filter(), len(t.Rows()), len(t.AllRows()))))
		b.WriteString("\n")
	}
	if len(t.AllRows()) == 0 {
		b.WriteString(d.styles.Help.Render("No records."))
	} else {
		b.WriteString(t.View())
	}
	b.WriteString("\n")
	b.WriteString(d.status.View(d.styles))
	b.WriteString("\n")
	b.WriteString(d.styles.Help.Render(d.helpLine()))
	return b.String()
}

func (d *Dashboard) renderHeader() string {
	who := d.data.User.Name
	if who == "" {
		who = d.data.User.Email
	}
	head := d.styles.Title.Render(d.title)
	if who != "" {
		head += d.styles.Help.Render(fmt.Sprintf(" · %s (%s)", who, d.data.Role.Title()))
	}
	return head
}

func (d *Dashboard) renderTabs() string {
	tabs := make([]string, len(d.pages))
	for i, p := range d.pages {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if i == d.active {
			tabs[i] = d.styles.ActiveTab.Render(label)
		} else {
			tabs[i] = d.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderCards lays the stat cards out left to right, wrapping onto a new
// row when the next card would overflow the width.
func (d *Dashboard) renderCards() string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, s := range d.data.Stats() {
		card := d.styles.Card.Render(d.styles.CardValue.Render(fmt.Sprint(s.Value)) + "\n" + d.styles.CardLabel.Render(s.Label))
		w := lipgloss.Width(card) + 1
		if len(row) > 0 && rowWidth+w > d.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, card, " ")
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (d *Dashboard) helpLine() string {
	switch {
	case d.mode == FilterMode:
		return HelpLine(filterHelp)
	case d.Page() == hris.PageLetters:
		return HelpLine(lettersHelp)
	default:
		return HelpLine(dashboardHelp)
	}
}
