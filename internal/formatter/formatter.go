// Package formatter renders records for non-interactive output: columnar
// tables, YAML, JSON, and exported letters.
package formatter

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	defaultHeaderFG  = lipgloss.Color("12")
	defaultHeaderBG  = lipgloss.Color("236")
	defaultCellColor = lipgloss.Color("248")
	defaultSeparator = lipgloss.Color("240")
)

// TableColors controls the rendered colors for tables. Nil fields fall back
// to the defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	CellColor      color.Color
	SeparatorColor color.Color
}

type tableStyles struct {
	header    lipgloss.Style
	cell      lipgloss.Style
	separator lipgloss.Style
}

func newTableStyles(tc TableColors) tableStyles {
	pick := func(c, fallback color.Color) color.Color {
		if c == nil {
			return fallback
		}
		return c
	}
	return tableStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(pick(tc.HeaderFG, defaultHeaderFG)).Background(pick(tc.HeaderBG, defaultHeaderBG)),
		cell:      lipgloss.NewStyle().Foreground(pick(tc.CellColor, defaultCellColor)),
		separator: lipgloss.NewStyle().Foreground(pick(tc.SeparatorColor, defaultSeparator)),
	}
}

// Stringify returns a single-line representation of a record value. Nested
// values render as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return flattenLines(t)
	case bool, int, int64, uint64:
		return fmt.Sprint(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprint(t)
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprint(t)
	default:
		return fmt.Sprint(t)
	}
}

// flattenLines keeps table rows single-line by writing line breaks as "\n".
func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// truncate shortens s to width display cells, ending in "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TerminalWidth returns the width of stdout, or fallback when stdout is not
// a terminal.
func TerminalWidth(fallback int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
