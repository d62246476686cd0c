// Package selector implements a filterable single-pick input: the user types a
// substring, picks one option from the matches with the keyboard or the mouse,
// and the caller is notified only when a value is committed.
//
// State is the toolkit-free state machine. Model wraps it as a Bubble Tea
// component with a bubbles text input and an inline suggestion list.
package selector

import "strings"

// Option is a single candidate. Value is the unique key reported on commit;
// Label is the text that is searched and displayed. Labels need not be unique.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Filter returns the options whose label contains query as a case-insensitive
// substring, in their original order. A query that is blank after trimming
// matches nothing, so an empty field never lists every option. Non-blank
// queries are matched as typed, surrounding spaces included.
func Filter(options []Option, query string) []Option {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	q := strings.ToLower(query)
	result := make([]Option, 0, len(options))
	for _, option := range options {
		if strings.Contains(strings.ToLower(option.Label), q) {
			result = append(result, option)
		}
	}
	return result
}

// LabelFor returns the label of the option with the given value. An empty value
// has an empty label; a value missing from options is shown as itself.
func LabelFor(options []Option, value string) string {
	if value == "" {
		return ""
	}
	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

func sameOptions(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
