package ui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/internal/submit"
)

func newDashboard(t *testing.T, p *hris.PageData, sub submit.Submitter) *Dashboard {
	t.Helper()
	d := NewDashboard(DashboardConfig{
		Title:     "HRIS",
		Page:      p,
		Context:   context.Background(),
		Submitter: sub,
		Theme:     plainTheme(),
		Selector:  selectorConfig(),
	})
	d.SetSize(100, 40)
	return d
}

func dashUpdate(d *Dashboard) func(tea.Msg) tea.Cmd {
	return func(msg tea.Msg) tea.Cmd {
		_, cmd := d.Update(msg)
		return cmd
	}
}

func press(d *Dashboard, keys ...string) []tea.Msg {
	var seen []tea.Msg
	for _, msg := range KeyMsgs(keys) {
		_, cmd := d.Update(msg)
		seen = append(seen, pump(dashUpdate(d), cmd)...)
	}
	return seen
}

func TestDashboardTabs(t *testing.T) {
	d := newDashboard(t, testPage(hris.RoleAdmin), &fakeSubmitter{})
	assert.Equal(t, hris.PageOverview, d.Page())

	press(d, "<Tab>")
	assert.Equal(t, hris.PageAccounts, d.Page())
	press(d, "<S-Tab>", "<S-Tab>")
	assert.Equal(t, hris.PageLetters, d.Page(), "shift+tab wraps to the last page")
	press(d, "3")
	assert.Equal(t, hris.PageRecruitment, d.Page())
	press(d, "9")
	assert.Equal(t, hris.PageRecruitment, d.Page(), "numbers past the last tab are ignored")

	view := ansi.Strip(d.View())
	for _, want := range []string{"1 Overview", "2 Accounts", "5 Letters", "Open applications", "Linus"} {
		assert.Contains(t, view, want)
	}
}

func TestDashboardRoleScopesTabs(t *testing.T) {
	d := newDashboard(t, testPage(hris.RoleApplicant), &fakeSubmitter{})
	view := ansi.Strip(d.View())
	assert.Contains(t, view, "2 Recruitment")
	assert.NotContains(t, view, "Accounts")
	assert.NotContains(t, view, "Letters")
}

func TestDashboardFilter(t *testing.T) {
	d := newDashboard(t, testPage(hris.RoleAdmin), &fakeSubmitter{})
	require.Len(t, d.Table().AllRows(), 2, "overview lists staff")

	press(d, "/")
	assert.Equal(t, FilterMode, d.Mode())
	press(d, "HOP")
	assert.Len(t, d.Table().Rows(), 1)
	assert.Equal(t, "s2", d.Table().Rows()[0]["id"])

	press(d, "<CR>")
	assert.Equal(t, BrowseMode, d.Mode())
	assert.Equal(t, "HOP", d.Table().Filter(), "enter keeps the filter")
	assert.Contains(t, ansi.Strip(d.View()), "/ HOP (1 of 2)")

	press(d, "<Esc>")
	assert.Empty(t, d.Table().Filter())
	assert.Len(t, d.Table().Rows(), 2)

	press(d, "/", "zzz", "<Esc>")
	assert.Equal(t, BrowseMode, d.Mode())
	assert.Len(t, d.Table().Rows(), 2, "esc in the filter clears it")
}

func TestDashboardOpensAndCancelsForm(t *testing.T) {
	d := newDashboard(t, testPage(hris.RoleAdmin), &fakeSubmitter{})

	press(d, "n")
	assert.Equal(t, BrowseMode, d.Mode(), "overview has no form")
	assert.Contains(t, d.Status().Message, "Nothing to create")

	press(d, "2", "n")
	require.Equal(t, FormMode, d.Mode())
	require.NotNil(t, d.Form())
	assert.Contains(t, ansi.Strip(d.View()), "New account")

	press(d, "q")
	assert.Equal(t, FormMode, d.Mode(), "q types into the form")
	assert.Equal(t, "q", d.Form().Value("name"))

	press(d, "<Esc>")
	assert.Equal(t, BrowseMode, d.Mode())
	assert.Nil(t, d.Form())
}

func TestDashboardSubmitsLetter(t *testing.T) {
	sub := &fakeSubmitter{resp: submit.Response{Status: 201, Message: "Letter sent."}}
	d := newDashboard(t, testPage(hris.RoleStaff), sub)

	press(d, "2")
	require.Equal(t, hris.PageLetters, d.Page())
	press(d, "n")
	require.Equal(t, FormMode, d.Mode())

	press(d, "grace", "<Down>", "<CR>", "<Tab>", "Hello", "<Tab>", "Hi Grace", "<C-s>")
	assert.Equal(t, BrowseMode, d.Mode())
	assert.Equal(t, StatusSuccess, d.Status().Kind)
	assert.Equal(t, "Letter sent.", d.Status().Message)

	sent := sub.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, RouteLettersStore, sent[0].Route)
	assert.Equal(t, "s2", sent[0].Form.Get("recipient_id"))
	assert.Equal(t, "Hello", sent[0].Form.Get("subject"))
	assert.Equal(t, "Hi Grace", sent[0].Form.Get("body"))
}

func TestDashboardArchivesLetter(t *testing.T) {
	sub := &fakeSubmitter{}
	p := testPage(hris.RoleStaff)
	d := newDashboard(t, p, sub)

	press(d, "a")
	assert.Empty(t, sub.sent(), "archive only applies on the letters page")

	press(d, "2", "a")
	sent := sub.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, RouteLettersArchive, sent[0].Route)
	assert.Equal(t, map[string]string{"letter": "l1"}, sent[0].Params)
	assert.True(t, p.Letters[0].Archived)
	assert.Equal(t, "Letter archived.", d.Status().Message)

	press(d, "a")
	assert.Len(t, sub.sent(), 1, "archived letters are not posted again")
	assert.Contains(t, d.Status().Message, "already archived")
}

func TestDashboardArchiveFailure(t *testing.T) {
	sub := &fakeSubmitter{err: submit.ErrUnauthorized}
	p := testPage(hris.RoleStaff)
	d := newDashboard(t, p, sub)

	press(d, "2", "a")
	assert.Equal(t, StatusError, d.Status().Kind)
	assert.Contains(t, d.Status().Message, "not authorized")
	assert.False(t, p.Letters[0].Archived)
}

func TestDashboardQuit(t *testing.T) {
	d := newDashboard(t, testPage(hris.RoleAdmin), &fakeSubmitter{})
	_, cmd := d.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
