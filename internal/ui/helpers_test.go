package ui

import (
	"context"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/hris"
	"github.com/oakwood-commons/hris/internal/submit"
)

type fakeSubmitter struct {
	mu   sync.Mutex
	reqs []submit.Request
	resp submit.Response
	err  error
}

func (f *fakeSubmitter) Submit(_ context.Context, req submit.Request) (submit.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func (f *fakeSubmitter) Close() error { return nil }

func (f *fakeSubmitter) sent() []submit.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submit.Request(nil), f.reqs...)
}

func plainTheme() Theme {
	return ThemeFromConfig(config.ThemeConfig{}, true)
}

func selectorConfig() config.SelectorConfig {
	return config.SelectorConfig{MaxRows: 5, Placeholder: "Type to search...", EmptyText: "No results found."}
}

func testPage(role hris.Role) *hris.PageData {
	return &hris.PageData{
		Role: role,
		User: hris.User{ID: "s1", Name: "Ada Lovelace", Email: "ada@example.com"},
		Divisions: []hris.Division{
			{ID: "eng", Name: "Engineering"},
			{ID: "fin", Name: "Finance"},
		},
		Accounts: []hris.Account{
			{ID: "acc1", Name: "Ada Lovelace", Email: "ada@example.com", Role: hris.RoleStaff, DivisionID: "eng", Active: true},
		},
		Staff: []hris.Staff{
			{ID: "s1", Name: "Ada Lovelace", Email: "ada@example.com", Position: "Engineer", DivisionID: "eng"},
			{ID: "s2", Name: "Grace Hopper", Email: "grace@example.com", Position: "Manager", DivisionID: "fin"},
		},
		Applications: []hris.Application{
			{ID: "ap1", Name: "Linus", Position: "Kernel", Status: hris.StatusInterview, DivisionID: "eng"},
		},
		Offboardings: []hris.Offboarding{
			{ID: "off1", StaffID: "s1", Reason: "Retirement", Status: hris.OffboardingPending},
		},
		Letters: []hris.Letter{
			{ID: "l1", Subject: "Welcome", SenderID: "s2", RecipientID: "s1"},
			{ID: "l3", Subject: "Reply", SenderID: "s1", RecipientID: "s2", Archived: true},
		},
	}
}

func key(s string) tea.KeyPressMsg {
	msgs := KeyMsgs([]string{s})
	if len(msgs) != 1 {
		panic("key: want exactly one key in " + s)
	}
	return msgs[0]
}

// pump runs cmd and feeds every message it yields back through update,
// returning the messages seen. Slow commands such as cursor blinks are
// dropped.
func pump(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	var walk func(tea.Cmd, int)
	walk = func(c tea.Cmd, depth int) {
		if c == nil || depth > maxSettleDepth {
			return
		}
		msg, ok := runCmd(c, 20*time.Millisecond)
		if !ok || msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, bc := range batch {
				walk(bc, depth+1)
			}
			return
		}
		seen = append(seen, msg)
		walk(update(msg), depth+1)
	}
	walk(cmd, 0)
	return seen
}

func formUpdate(f *Form) func(tea.Msg) tea.Cmd {
	return func(msg tea.Msg) tea.Cmd {
		_, cmd := f.Update(msg)
		return cmd
	}
}

// typeInto sends each key of keys to f, settling the commands of each.
func typeInto(f *Form, keys ...string) []tea.Msg {
	var seen []tea.Msg
	for _, msg := range KeyMsgs(keys) {
		_, cmd := f.Update(msg)
		seen = append(seen, pump(formUpdate(f), cmd)...)
	}
	return seen
}

func hasMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
