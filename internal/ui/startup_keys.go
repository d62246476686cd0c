package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultSettle is how long ApplyKeys waits for a command to produce its
// message. Commands that take longer, such as timers, are dropped.
const DefaultSettle = 50 * time.Millisecond

// maxSettleDepth bounds the chain of messages one key may trigger.
const maxSettleDepth = 32

// ApplyKeys feeds scripted key tokens to m and returns the updated model.
// Tokens are Vim-like keys ("<Down>", "<CR>", "<Esc>", "<S-Tab>", "<C-s>")
// mixed with literal text; a leading backslash makes the whole token literal.
// Commands returned by Update are run and their messages fed back, so a key
// that commits a selector also delivers the commit.
func ApplyKeys(m tea.Model, keys []string, settle time.Duration) tea.Model {
	if m == nil {
		return nil
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	for _, msg := range KeyMsgs(keys) {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = settleCmd(m, cmd, settle, 0)
	}
	return m
}

// KeyMsgs parses tokens into the key presses they stand for. Unknown <...>
// keys are dropped.
func KeyMsgs(keys []string) []tea.KeyPressMsg {
	var out []tea.KeyPressMsg
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f12>").
		if strings.HasPrefix(token, `\`) {
			out = append(out, literalKeys(strings.TrimPrefix(token, `\`))...)
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isKey {
				out = append(out, literalKeys(segment.text)...)
				continue
			}
			if msg, ok := keyMsgFromToken(segment.text); ok {
				out = append(out, msg)
			}
		}
	}
	return out
}

func literalKeys(text string) []tea.KeyPressMsg {
	out := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		out = append(out, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return out
}

// Init runs a model's Init command through the same settling as ApplyKeys.
func Init(m tea.Model, settle time.Duration) tea.Model {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return settleCmd(m, m.Init(), settle, 0)
}

func settleCmd(m tea.Model, cmd tea.Cmd, settle time.Duration, depth int) tea.Model {
	if cmd == nil || depth >= maxSettleDepth {
		return m
	}
	msg, ok := runCmd(cmd, settle)
	if !ok || msg == nil {
		return m
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = settleCmd(m, c, settle, depth+1)
		}
		return m
	case tea.QuitMsg:
		return m
	}
	next, c := m.Update(msg)
	return settleCmd(next, c, settle, depth+1)
}

func runCmd(cmd tea.Cmd, settle time.Duration) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(settle):
		return nil, false
	}
}

// tokenSegment is either a <...> key or a run of literal text.
type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits a token into keys and literal text.
// Example: "<Down>ada<CR>" -> ["<Down>" key, "ada" text, "<CR>" key]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

var namedKeys = map[string]tea.KeyPressMsg{
	"esc":       {Code: tea.KeyEscape},
	"escape":    {Code: tea.KeyEscape},
	"c-[":       {Code: tea.KeyEscape},
	"cr":        {Code: tea.KeyEnter},
	"enter":     {Code: tea.KeyEnter},
	"return":    {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"s-tab":     {Code: tea.KeyTab, Mod: tea.ModShift},
	"space":     {Code: ' ', Text: " "},
	"bs":        {Code: tea.KeyBackspace},
	"backspace": {Code: tea.KeyBackspace},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"home":      {Code: tea.KeyHome},
	"end":       {Code: tea.KeyEnd},
	"pageup":    {Code: tea.KeyPgUp},
	"pagedown":  {Code: tea.KeyPgDown},
	"c-c":       {Code: 'c', Mod: tea.ModCtrl},
	"c-s":       {Code: 's', Mod: tea.ModCtrl},
	"c-u":       {Code: 'u', Mod: tea.ModCtrl},
	"lt":        {Code: '<', Text: "<"},
}

// keyMsgFromToken parses one <...> token.
func keyMsgFromToken(token string) (tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return tea.KeyPressMsg{}, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	msg, ok := namedKeys[inner]
	return msg, ok
}
