package ui

import (
	runewidth "github.com/mattn/go-runewidth"
)

// StatusKind selects how the status line is colored.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// StatusModel is the one-line message shown above the help line.
type StatusModel struct {
	Message string
	Kind    StatusKind
	Width   int
}

// Set replaces the message.
func (m *StatusModel) Set(kind StatusKind, msg string) {
	m.Kind = kind
	m.Message = msg
}

// Clear removes the message.
func (m *StatusModel) Clear() {
	m.Message = ""
	m.Kind = StatusInfo
}

// View renders the status line, truncated to Width.
func (m StatusModel) View(s Styles) string {
	if m.Message == "" {
		return ""
	}
	text := m.Message
	if m.Width > 0 && runewidth.StringWidth(text) > m.Width {
		text = runewidth.Truncate(text, m.Width, "…")
	}
	switch m.Kind {
	case StatusError:
		return s.StatusError.Render(text)
	case StatusSuccess:
		return s.StatusOK.Render(text)
	default:
		return s.Status.Render(text)
	}
}
