package ui

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var lastSplashID atomic.Int64

type splashTickMsg struct {
	id    int64
	frame int
}

// SplashDoneMsg is emitted once the last frame has shown or a key skipped
// the sequence.
type SplashDoneMsg struct{}

// Splash steps through a fixed list of frames on a timer. Ticks carry the
// sequencer id so ticks from an older splash are ignored.
type Splash struct {
	id       int64
	frames   []string
	interval time.Duration
	frame    int
	done     bool
	style    lipgloss.Style
	width    int
	height   int
}

// NewSplash creates a sequencer over frames.
func NewSplash(frames []string, interval time.Duration, style lipgloss.Style) *Splash {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Splash{
		id:       lastSplashID.Add(1),
		frames:   frames,
		interval: interval,
		style:    style,
		done:     len(frames) == 0,
	}
}

// Init schedules the first frame change.
func (s *Splash) Init() tea.Cmd {
	if s.done {
		return finishSplash
	}
	return s.tick()
}

// Done reports whether the sequence has finished.
func (s *Splash) Done() bool { return s.done }

// Frame returns the index of the frame on screen.
func (s *Splash) Frame() int { return s.frame }

// SetSize centers the frame in width x height.
func (s *Splash) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update advances on matching ticks and skips to the end on any key.
func (s *Splash) Update(msg tea.Msg) (*Splash, tea.Cmd) {
	if s.done {
		return s, nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg, tea.MouseClickMsg:
		s.done = true
		return s, finishSplash
	case splashTickMsg:
		if msg.id != s.id || msg.frame != s.frame {
			return s, nil
		}
		s.frame++
		if s.frame >= len(s.frames) {
			s.frame = len(s.frames) - 1
			s.done = true
			return s, finishSplash
		}
		return s, s.tick()
	}
	return s, nil
}

func (s *Splash) tick() tea.Cmd {
	id, frame := s.id, s.frame
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return splashTickMsg{id: id, frame: frame}
	})
}

func finishSplash() tea.Msg { return SplashDoneMsg{} }

// View renders the current frame.
func (s *Splash) View() string {
	if len(s.frames) == 0 {
		return ""
	}
	text := s.style.Render(s.frames[s.frame])
	if s.width <= 0 || s.height <= 0 {
		return text
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, text)
}
