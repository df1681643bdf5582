package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// chatState drives the chat pane: note resources under the chat context
// root shown as a transcript, oldest first.
type chatState struct {
	root     model.Resource
	messages []model.Resource
	input    textinput.Model
}

func newChatState() chatState {
	ti := textinput.New()
	ti.Placeholder = "message"
	ti.CharLimit = 500
	ti.Width = 60
	return chatState{input: ti}
}

func (m Model) updateChatData(msg ChatLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus("loading chat: "+msg.Err.Error(), true)
	}
	m.chat.messages = msg.Messages
	return m, nil
}

func (m Model) updateChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.chat
	switch msg.String() {
	case "esc":
		return m, m.leaveToLauncher()

	case "enter":
		text := strings.TrimSpace(c.input.Value())
		if text == "" {
			return m, nil
		}
		c.input.SetValue("")
		return m, SendChatCmd(m.store, c.root.ID, chatAuthor(), text)
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return m, cmd
}

func (m Model) viewChat() string {
	c := m.chat
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("✉ Chat"))
	sb.WriteString("\n\n")

	if len(c.messages) == 0 {
		sb.WriteString(t.MutedText.Render("  say something"))
		sb.WriteString("\n")
	}

	// Oldest first; show only what fits above the input line.
	visible := c.messages
	maxLines := m.height - 8
	if maxLines > 0 && len(visible) > maxLines {
		visible = visible[len(visible)-maxLines:]
	}
	me := chatAuthor()
	for _, msg := range visible {
		from := msg.MetaData.String("from")
		if from == "" {
			from = "?"
		}
		fromStyle := t.SecondaryText
		if from == me {
			fromStyle = t.PrimaryBold
		}
		sb.WriteString("  ")
		sb.WriteString(fromStyle.Render(from))
		sb.WriteString(" ")
		sb.WriteString(t.MutedText.Render(FormatTimeRel(msg.CreatedAt)))
		sb.WriteString("  ")
		sb.WriteString(truncateTo(msg.Title, m.width-20))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(t.PrimaryBold.Render("> "))
	sb.WriteString(c.input.View())
	sb.WriteString("\n")

	return sb.String()
}
