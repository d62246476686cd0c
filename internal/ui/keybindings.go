package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Action is what a key press asks the console to do.
type Action string

const (
	ActionNone      Action = ""
	ActionQuit      Action = "quit"
	ActionNextTab   Action = "next_tab"
	ActionPrevTab   Action = "prev_tab"
	ActionFilter    Action = "filter"
	ActionNew       Action = "new"
	ActionArchive   Action = "archive"
	ActionNextField Action = "next_field"
	ActionPrevField Action = "prev_field"
	ActionSubmit    Action = "submit"
	ActionCancel    Action = "cancel"
)

// DashboardKeyBindings maps keys to actions while browsing a page. Number
// keys jump to a tab and are handled separately.
var DashboardKeyBindings = map[string]Action{
	"q":         ActionQuit,
	"ctrl+c":    ActionQuit,
	"tab":       ActionNextTab,
	"right":     ActionNextTab,
	"shift+tab": ActionPrevTab,
	"left":      ActionPrevTab,
	"/":         ActionFilter,
	"n":         ActionNew,
	"a":         ActionArchive,
	"esc":       ActionCancel,
}

// FormKeyBindings maps keys to actions while a form is open. Keys not listed
// go to the focused field.
var FormKeyBindings = map[string]Action{
	"tab":       ActionNextField,
	"shift+tab": ActionPrevField,
	"ctrl+s":    ActionSubmit,
	"esc":       ActionCancel,
	"ctrl+c":    ActionQuit,
}

// Lookup returns the action bound to msg in bindings.
func Lookup(bindings map[string]Action, msg tea.KeyPressMsg) Action {
	return bindings[msg.String()]
}

// tabNumber returns the zero-based tab a number key selects.
func tabNumber(msg tea.KeyPressMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

// KeyHelp is one entry of a help line.
type KeyHelp struct {
	Key  string
	Help string
}

var (
	dashboardHelp = []KeyHelp{
		{"tab", "next page"}, {"1-9", "jump"}, {"/", "filter"}, {"n", "new"}, {"q", "quit"},
	}
	lettersHelp = []KeyHelp{
		{"tab", "next page"}, {"/", "filter"}, {"n", "new"}, {"a", "archive"}, {"q", "quit"},
	}
	filterHelp = []KeyHelp{
		{"enter", "apply"}, {"esc", "clear"},
	}
	formHelp = []KeyHelp{
		{"tab", "next field"}, {"shift+tab", "previous"}, {"ctrl+s", "submit"}, {"esc", "cancel"},
	}
)

// HelpLine renders entries as "key action" pairs separated by dots.
func HelpLine(entries []KeyHelp) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Key + " " + e.Help
	}
	return strings.Join(parts, " • ")
}
