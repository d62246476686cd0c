package selector

import "strings"

// State holds the selector's interaction state. The committed value and the
// option set belong to the caller and are replaced through SetValue and
// SetOptions; the query, the open flag and the highlight are internal.
//
// The zero value is a closed selector with no options and nothing committed.
type State struct {
	options     []Option
	committed   string
	query       string
	open        bool
	filtered    []Option
	highlighted int
}

// NewState returns a closed selector showing the label of value.
func NewState(options []Option, value string) State {
	s := State{
		options:     options,
		committed:   value,
		highlighted: -1,
	}
	s.query = s.Label()
	return s
}

// Options returns the full candidate set.
func (s *State) Options() []Option { return s.options }

// Committed returns the last committed value.
func (s *State) Committed() string { return s.committed }

// Label returns the display label of the committed value.
func (s *State) Label() string { return LabelFor(s.options, s.committed) }

// Query returns the current text in the field.
func (s *State) Query() string { return s.query }

// IsOpen reports whether the suggestion list is visible.
func (s *State) IsOpen() bool { return s.open }

// Filtered returns the options matching the query while the list is open.
func (s *State) Filtered() []Option { return s.filtered }

// Highlighted returns the keyboard highlight within Filtered, or -1.
func (s *State) Highlighted() int {
	if !s.open {
		return -1
	}
	return s.highlighted
}

// SetOptions replaces the candidate set. An open list is refiltered and loses
// its highlight if the matches changed; a closed field is resynchronized to the
// committed value's label, which may have changed with the options.
func (s *State) SetOptions(options []Option) {
	s.options = options
	if !s.open {
		s.query = s.Label()
		return
	}
	filtered := Filter(s.options, s.query)
	if !sameOptions(filtered, s.filtered) {
		s.highlighted = -1
	}
	s.filtered = filtered
}

// SetValue applies a committed value supplied by the caller. The field is
// resynchronized and closed only when the value actually changes, so an
// in-progress edit survives the caller re-supplying the same value.
// It reports whether the value changed.
func (s *State) SetValue(value string) bool {
	if value == s.committed {
		return false
	}
	s.committed = value
	s.query = s.Label()
	s.close()
	return true
}

// Edit replaces the query with text, as typed by the user. Text that is
// blank after trimming closes the list. It commits the empty value only when
// it clears something, a non-blank query or a non-empty committed value;
// Edit then returns ("", true). Any other text opens the list with fresh
// matches and no highlight, and returns ("", false). The query keeps the raw
// text in both cases.
func (s *State) Edit(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		clearing := strings.TrimSpace(s.query) != "" || s.committed != ""
		s.query = text
		s.close()
		if !clearing {
			return "", false
		}
		s.committed = ""
		return "", true
	}
	s.query = text
	s.open = true
	s.filtered = Filter(s.options, text)
	s.highlighted = -1
	return "", false
}

// MoveDown moves the highlight to the next match, wrapping to the first.
func (s *State) MoveDown() {
	n := len(s.filtered)
	if !s.open || n == 0 {
		return
	}
	s.highlighted = (s.highlighted + 1) % n
}

// MoveUp moves the highlight to the previous match, wrapping to the last.
func (s *State) MoveUp() {
	n := len(s.filtered)
	if !s.open || n == 0 {
		return
	}
	if s.highlighted <= 0 {
		s.highlighted = n - 1
		return
	}
	s.highlighted--
}

// Enter commits the highlighted match. It returns false and changes nothing
// when the list is closed or nothing is highlighted.
func (s *State) Enter() (string, bool) {
	if !s.open || s.highlighted < 0 || s.highlighted >= len(s.filtered) {
		return "", false
	}
	return s.commit(s.filtered[s.highlighted].Value), true
}

// Pick commits the match at index i of Filtered directly, ignoring the
// highlight. Indexes outside the list, including the empty-state row, are
// ignored.
func (s *State) Pick(i int) (string, bool) {
	if !s.open || i < 0 || i >= len(s.filtered) {
		return "", false
	}
	return s.commit(s.filtered[i].Value), true
}

// Escape abandons the edit: the field reverts to the committed label and the
// list closes. Nothing is committed.
func (s *State) Escape() {
	s.revert()
}

// Blur is the same revert as Escape, applied when the field loses focus
// without a commit.
func (s *State) Blur() {
	s.revert()
}

func (s *State) commit(value string) string {
	s.committed = value
	s.query = s.Label()
	s.close()
	return value
}

func (s *State) revert() {
	s.query = s.Label()
	s.close()
}

func (s *State) close() {
	s.open = false
	s.filtered = nil
	s.highlighted = -1
}
