package cli

import (
	"strings"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatReplyMsg signals that a submitted question has been answered.
type chatReplyMsg struct {
	accepted bool
}

// chatView is the assistant chat about the active strategy. One question
// may be outstanding at a time.
type chatView struct {
	state   *SharedState
	input   textinput.Model
	pending string
	quick   int
	notice  string
}

func newChatView(state *SharedState) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.Width = max(state.Width-10, 20)
	return &chatView{state: state, input: ti}
}

func (v *chatView) ID() ViewID    { return ViewChat }
func (v *chatView) Title() string { return "Assistant" }

func (v *chatView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
	}
	if len(v.state.Chat.Messages()) == 0 && v.pending == "" {
		bindings = append(bindings, key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "quick question")))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")))
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		v.pending = ""
		if !msg.accepted {
			v.notice = "The assistant is still answering."
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyTab:
			if len(v.state.Chat.Messages()) == 0 && v.pending == "" && len(assistant.QuickQuestions) > 0 {
				v.input.SetValue(assistant.QuickQuestions[v.quick%len(assistant.QuickQuestions)])
				v.input.CursorEnd()
				v.quick++
			}
			return v, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(v.input.Value())
			if text == "" {
				return v, nil
			}
			if v.pending != "" || v.state.Chat.Busy() {
				v.notice = "The assistant is still answering."
				return v, nil
			}
			v.input.Reset()
			v.notice = ""
			v.pending = text
			return v, v.submit(text)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) submit(text string) tea.Cmd {
	chat, ctx := v.state.Chat, v.state.Ctx
	return func() tea.Msg {
		_, ok := chat.Submit(ctx, text)
		return chatReplyMsg{accepted: ok}
	}
}

func (v *chatView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	msgs := v.state.Chat.Messages()
	if len(msgs) == 0 && v.pending == "" {
		b.WriteString(formatter.FormatChatWelcome(v.state.Chat.Strategy(), assistant.QuickQuestions))
		b.WriteString("\n")
	} else {
		b.WriteString(formatter.Dim("  about "+string(v.state.Chat.Strategy())) + "\n\n")
	}

	for _, m := range msgs {
		b.WriteString(formatter.FormatChatMessage(m) + "\n\n")
	}
	// The user turn is appended by the conversation once the call starts;
	// show it until then.
	if v.pending != "" {
		if n := len(msgs); n == 0 || msgs[n-1].Content != v.pending {
			b.WriteString(formatter.Dim("You: ") + v.pending + "\n\n")
		}
		b.WriteString(formatter.Dim("  Thinking...") + "\n\n")
	}
	if v.notice != "" {
		b.WriteString(formatter.StyleYellow.Render("  "+v.notice) + "\n")
	}

	b.WriteString(formatter.StylePurple.Render("ask") + formatter.Dim("> ") + v.input.View())
	return b.String()
}
