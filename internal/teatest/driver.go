// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd inline, so a
// test sees the model settle after each key press without a tea.Program.
// Cmds that block (cursor blink, tea.Tick) are abandoned after a short
// timeout.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout separates immediate Cmds from timer-driven ones. Store and
// assistant stubs answer in microseconds; blink and tick Cmds wait far
// longer.
const cmdTimeout = 10 * time.Millisecond

// maxDepth bounds Cmd chains that keep producing messages.
const maxDepth = 100

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// namedKeys maps the key names accepted by Press to key types.
var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"space":  tea.KeySpace,
	"bksp":   tea.KeyBackspace,
	"ctrl+c": tea.KeyCtrlC,
	"ctrl+s": tea.KeyCtrlS,
	"ctrl+x": tea.KeyCtrlX,
}

// Driver owns a model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that a Cmd produced tea.QuitMsg.
	Quitting bool
}

// Option configures a Driver before Init runs.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg first.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and settles. Messages after a quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

// Press sends named keys in order: "enter", "esc", "ctrl+s" and the rest
// of namedKeys. Any other name is sent as its runes.
func (d *Driver) Press(names ...string) {
	d.T.Helper()
	for _, name := range names {
		if k, ok := namedKeys[name]; ok {
			msg := tea.KeyMsg{Type: k}
			if k == tea.KeySpace {
				msg.Runes = []rune{' '}
			}
			d.Send(msg)
			continue
		}
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
	}
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press("enter") }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press("esc") }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press("down") }
func (d *Driver) PressTab()   { d.T.Helper(); d.Press("tab") }

// PressCtrl sends a control key such as tea.KeyCtrlS.
func (d *Driver) PressCtrl(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// Type sends s one key per rune. Spaces arrive as tea.KeySpace, as from a
// terminal.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		if r == ' ' {
			d.Press("space")
			continue
		}
		d.PressKey(r)
	}
}

// PlainView renders the model without ANSI escapes.
func (d *Driver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg, ok := await(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

// await runs cmd, giving up after cmdTimeout.
func await(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

// isBlink matches the unexported cursor blink messages of bubbles, which
// would otherwise chain into timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
