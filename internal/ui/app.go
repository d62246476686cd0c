package ui

import (
	tea "charm.land/bubbletea/v2"
)

// App is the root model of the dashboard program: an optional splash
// followed by the role dashboard. It owns the terminal size and the global
// quit key and routes everything else to the active child.
type App struct {
	splash    *Splash
	dashboard *Dashboard

	width    int
	height   int
	quitting bool
}

// NewApp wraps dashboard. A nil splash starts on the dashboard.
func NewApp(dashboard *Dashboard, splash *Splash) *App {
	return &App{splash: splash, dashboard: dashboard, width: 80, height: 24}
}

// Dashboard returns the dashboard child.
func (m *App) Dashboard() *Dashboard { return m.dashboard }

// InSplash reports whether the splash is still on screen.
func (m *App) InSplash() bool { return m.splash != nil && !m.splash.Done() }

// Init starts the splash sequence.
func (m *App) Init() tea.Cmd {
	if m.InSplash() {
		return m.splash.Init()
	}
	return m.dashboard.Init()
}

// Update handles global messages first, then routes to the active child.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.splash != nil {
			m.splash.SetSize(msg.Width, msg.Height)
		}
		m.dashboard.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case SplashDoneMsg:
		return m, m.dashboard.Init()
	}

	if m.InSplash() {
		var cmd tea.Cmd
		m.splash, cmd = m.splash.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// View renders the splash or the dashboard.
func (m *App) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	content := ""
	if m.InSplash() {
		content = m.splash.View()
	} else {
		content = m.dashboard.View()
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
