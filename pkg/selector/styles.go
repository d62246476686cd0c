package selector

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Styles controls how the suggestion list is drawn.
type Styles struct {
	Row         lipgloss.Style
	Highlighted lipgloss.Style
	Empty       lipgloss.Style
	Count       lipgloss.Style
	Disabled    lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.Color("250"), lipgloss.Color("24"), lipgloss.Color("244"))
}

// NewStyles builds styles from a foreground, a highlight background and a muted
// color used for the empty and count rows.
func NewStyles(fg, highlightBG, muted color.Color) Styles {
	return Styles{
		Row:         lipgloss.NewStyle().Foreground(fg),
		Highlighted: lipgloss.NewStyle().Foreground(fg).Background(highlightBG).Bold(true),
		Empty:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		Count:       lipgloss.NewStyle().Foreground(muted),
		Disabled:    lipgloss.NewStyle().Foreground(muted).Faint(true),
	}
}

// PlainStyles returns colorless styles; the highlight is shown in reverse video.
func PlainStyles() Styles {
	return Styles{
		Row:         lipgloss.NewStyle(),
		Highlighted: lipgloss.NewStyle().Reverse(true),
		Empty:       lipgloss.NewStyle(),
		Count:       lipgloss.NewStyle(),
		Disabled:    lipgloss.NewStyle(),
	}
}
