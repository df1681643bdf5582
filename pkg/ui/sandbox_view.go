package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// sandboxState drives the sandbox pane: a node document loaded from a JSON
// file and rendered straight through the view engine, bypassing the store.
type sandboxState struct {
	tree     *model.Node
	rendered string
	err      error
}

func (m Model) updateSandboxData(msg SandboxLoadedMsg) (tea.Model, tea.Cmd) {
	m.sandbox.err = msg.Err
	m.sandbox.tree = msg.Tree
	if msg.Err == nil && msg.Tree != nil {
		m.sandbox.rendered = m.engine.Render(msg.Tree)
	} else {
		m.sandbox.rendered = ""
	}
	return m, nil
}

func (m Model) updateSandboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "r":
		if m.sandboxPath != "" {
			return m, LoadSandboxCmd(m.sandboxPath)
		}
	}
	return m, nil
}

func (m Model) viewSandbox() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("░ Sandbox"))
	if m.sandboxPath != "" {
		sb.WriteString("  ")
		sb.WriteString(t.MutedText.Render(m.sandboxPath))
	}
	sb.WriteString("\n\n")

	// A loaded document wins over the startup hint; the hint only shows
	// when nothing has been rendered yet.
	switch {
	case m.sandbox.err != nil:
		sb.WriteString(t.ErrorText.Render("  " + m.sandbox.err.Error()))
		sb.WriteString("\n")
	case m.sandbox.rendered != "":
		sb.WriteString(m.sandbox.rendered)
		if !strings.HasSuffix(m.sandbox.rendered, "\n") {
			sb.WriteString("\n")
		}
	case m.sandboxPath == "":
		sb.WriteString(t.MutedText.Render("  start with -sandbox <file.json> to preview a node document"))
		sb.WriteString("\n")
	default:
		sb.WriteString(t.MutedText.Render("  empty document"))
		sb.WriteString("\n")
	}

	return sb.String()
}
