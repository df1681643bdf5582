package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// feedState drives the recent-activity feed: resources across every
// context root ordered by update time.
type feedState struct {
	resources []model.Resource
	cursor    int
}

func (m Model) updateFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.feed
	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.resources)-1 {
			f.cursor++
		}

	case "y":
		if f.cursor < len(f.resources) {
			return m, CopyIDCmd(f.resources[f.cursor].ID)
		}

	case "r":
		return m, LoadFeedCmd(m.store, 50)
	}
	return m, nil
}

func (m Model) viewFeed() string {
	f := m.feed
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("☲ Feed"))
	sb.WriteString("\n\n")

	if len(f.resources) == 0 {
		sb.WriteString(t.MutedText.Render("  nothing happened yet"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, r := range f.resources {
		icon, iconColor := t.GetTypeIcon(r.Type)
		line := fmt.Sprintf("  %s %s %s",
			t.Renderer.NewStyle().Foreground(iconColor).Render(icon),
			padRight(truncateTo(r.Title, 44), 44),
			t.MutedText.Render(FormatTimeRel(r.UpdatedAt)))
		if i == f.cursor {
			sb.WriteString(t.Selected.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
