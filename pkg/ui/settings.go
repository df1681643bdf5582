package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/config"
)

func (m Model) updateSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "c":
		m.cfg.UI.CompactRows = !m.cfg.UI.CompactRows
		m.browser.list.SetDelegate(ResourceDelegate{Theme: m.theme, CompactRows: m.cfg.UI.CompactRows})
		return m, m.setStatus(fmt.Sprintf("compact rows: %v", m.cfg.UI.CompactRows), false)

	case "d":
		panes := []string{"launcher", "tasks", "household", "health", "finance", "chat", "feed", "settings"}
		next := 0
		for i, p := range panes {
			if p == m.cfg.UI.DefaultPane {
				next = (i + 1) % len(panes)
				break
			}
		}
		m.cfg.UI.DefaultPane = panes[next]
		return m, m.setStatus("default pane: "+m.cfg.UI.DefaultPane, false)

	case "t":
		switch m.cfg.UI.Theme {
		case "dark":
			m.cfg.UI.Theme = "light"
		case "light":
			m.cfg.UI.Theme = "auto"
		default:
			m.cfg.UI.Theme = "dark"
		}
		return m, m.setStatus("theme: "+m.cfg.UI.Theme+" (takes effect on restart)", false)

	case "s":
		return m, SaveConfigCmd(m.cfg)
	}
	return m, nil
}

func (m Model) viewSettings() string {
	t := m.theme
	cfg := m.cfg
	var sb strings.Builder

	sb.WriteString(t.Header.Render("⚙ Settings"))
	sb.WriteString("\n\n")

	label := t.SecondaryText
	value := t.Base

	rows := []struct{ k, v string }{
		{"config file", config.ConfigPath()},
		{"database", cfg.ResolvedDatabasePath()},
		{"default pane (d)", cfg.UI.DefaultPane},
		{"theme (t)", cfg.UI.Theme},
		{"compact rows (c)", fmt.Sprintf("%v", cfg.UI.CompactRows)},
		{"launcher order", strings.Join(cfg.Launcher.Order, ", ")},
		{"hidden apps", strings.Join(cfg.Launcher.Hidden, ", ")},
	}
	for _, row := range rows {
		v := row.v
		if v == "" {
			v = "(unset)"
		}
		sb.WriteString("  ")
		sb.WriteString(label.Render(padRight(row.k, 18)))
		sb.WriteString(value.Render(truncateTo(v, m.width-24)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(t.MutedText.Render("  press s to save changes to disk"))
	sb.WriteString("\n")

	return sb.String()
}
