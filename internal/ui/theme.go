package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/pkg/selector"
)

// Theme defines the colors used across the console.
type Theme struct {
	Foreground  color.Color // body text
	Muted       color.Color // labels, help, placeholders
	Accent      color.Color // titles, active tab, focused label
	HighlightBG color.Color // selected table row, highlighted match
	Error       color.Color // field and status errors
	Success     color.Color // status after a successful submit
	Border      color.Color // card and form borders
	NoColor     bool
}

// ThemeFromConfig converts a configured palette. Blank entries render without
// a color.
func ThemeFromConfig(tc config.ThemeConfig, noColor bool) Theme {
	return Theme{
		Foreground:  parseColor(tc.Foreground),
		Muted:       parseColor(tc.Muted),
		Accent:      parseColor(tc.Accent),
		HighlightBG: parseColor(tc.HighlightBG),
		Error:       parseColor(tc.Error),
		Success:     parseColor(tc.Success),
		Border:      parseColor(tc.Border),
		NoColor:     noColor,
	}
}

func parseColor(s string) color.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(s)
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Card         lipgloss.Style
	CardValue    lipgloss.Style
	CardLabel    lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	FieldError   lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	StatusOK     lipgloss.Style
	Help         lipgloss.Style
	Form         lipgloss.Style
	Splash       lipgloss.Style
}

// Styles builds the style set. Without color only weight, reverse video and
// borders distinguish elements.
func (t Theme) Styles() Styles {
	if t.NoColor {
		return Styles{
			Title:        lipgloss.NewStyle().Bold(true),
			Tab:          lipgloss.NewStyle().Padding(0, 1),
			ActiveTab:    lipgloss.NewStyle().Padding(0, 1).Reverse(true),
			Card:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
			CardValue:    lipgloss.NewStyle().Bold(true),
			CardLabel:    lipgloss.NewStyle(),
			Label:        lipgloss.NewStyle(),
			FocusedLabel: lipgloss.NewStyle().Bold(true),
			FieldError:   lipgloss.NewStyle(),
			Status:       lipgloss.NewStyle(),
			StatusError:  lipgloss.NewStyle().Bold(true),
			StatusOK:     lipgloss.NewStyle(),
			Help:         lipgloss.NewStyle(),
			Form:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
			Splash:       lipgloss.NewStyle().Bold(true),
		}
	}
	return Styles{
		Title:        lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Tab:          lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		ActiveTab:    lipgloss.NewStyle().Foreground(t.Foreground).Background(t.HighlightBG).Bold(true).Padding(0, 1),
		Card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		CardValue:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		CardLabel:    lipgloss.NewStyle().Foreground(t.Muted),
		Label:        lipgloss.NewStyle().Foreground(t.Muted),
		FocusedLabel: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		FieldError:   lipgloss.NewStyle().Foreground(t.Error),
		Status:       lipgloss.NewStyle().Foreground(t.Foreground),
		StatusError:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		StatusOK:     lipgloss.NewStyle().Foreground(t.Success),
		Help:         lipgloss.NewStyle().Foreground(t.Muted),
		Form:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Splash:       lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

// SelectorStyles returns the palette for embedded selectors.
func (t Theme) SelectorStyles() selector.Styles {
	if t.NoColor {
		return selector.PlainStyles()
	}
	return selector.NewStyles(t.Foreground, t.HighlightBG, t.Muted)
}
