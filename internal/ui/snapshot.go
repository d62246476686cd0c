package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures snapshot rendering.
type SnapshotConfig struct {
	Width   int
	Height  int
	Keys    []string
	NoColor bool
	Settle  time.Duration
}

// RenderSnapshot drives m without a terminal: it sends the window size, runs
// Init, applies the scripted keys and returns the resulting view. Without
// color the view is stripped of escape sequences.
func RenderSnapshot(m tea.Model, cfg SnapshotConfig) (string, tea.Model) {
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: cfg.Width, Height: cfg.Height})
	m = Init(m, cfg.Settle)
	m = ApplyKeys(m, cfg.Keys, cfg.Settle)

	view := fmt.Sprint(m.View().Content)
	if cfg.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, cfg.Height, cfg.Width), m
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
