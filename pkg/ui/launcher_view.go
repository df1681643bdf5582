package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// launcherColumns is how many app tiles fit per row before wrapping.
const launcherColumns = 4

func (m Model) updateLauncherKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.appCursor-launcherColumns >= 0 {
			m.appCursor -= launcherColumns
		}
	case "down", "j":
		if m.appCursor+launcherColumns < len(m.apps) {
			m.appCursor += launcherColumns
		}
	case "left", "h":
		if m.appCursor > 0 {
			m.appCursor--
		}
	case "right", "l":
		if m.appCursor < len(m.apps)-1 {
			m.appCursor++
		}

	case "r":
		return m, LoadAppsCmd(m.store, m.cfg)

	case "enter":
		if m.appCursor < len(m.apps) {
			return m, m.openApp(m.apps[m.appCursor])
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.apps) {
			m.appCursor = idx
			return m, m.openApp(m.apps[idx])
		}
	}
	return m, nil
}

// viewLauncher renders the app grid: tiles with icon, title and live count.
func (m Model) viewLauncher() string {
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("lifeos"))
	sb.WriteString("\n\n")

	if len(m.apps) == 0 {
		sb.WriteString(t.MutedText.Render("  no apps"))
		return sb.String()
	}

	tileWidth := 18
	if m.width > 0 && m.width/launcherColumns < tileWidth+2 {
		tileWidth = m.width/launcherColumns - 2
		if tileWidth < 10 {
			tileWidth = 10
		}
	}

	tileStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Width(tileWidth).
		Padding(0, 1)
	selectedTileStyle := tileStyle.
		BorderForeground(t.Primary).
		Bold(true)

	var row []string
	for i, app := range m.apps {
		label := fmt.Sprintf("%s %s", app.Icon, truncateTo(app.Title, tileWidth-6))
		var count string
		if app.Count > 0 {
			count = t.Renderer.NewStyle().Foreground(ThemeFg("#8BE9FD")).Render(fmt.Sprintf("%d items", app.Count))
		} else {
			count = t.MutedText.Render("empty")
		}
		body := label + "\n" + count

		if i == m.appCursor {
			row = append(row, selectedTileStyle.Render(body))
		} else {
			row = append(row, tileStyle.Render(body))
		}

		if (i+1)%launcherColumns == 0 || i == len(m.apps)-1 {
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			sb.WriteString("\n")
			row = nil
		}
	}

	return sb.String()
}
