package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/health"
	"github.com/vanderheijden86/lifeos/pkg/model"
)

// healthState drives the health pane: metric summaries computed from event
// resources below the health context root.
type healthState struct {
	root      model.Resource
	samples   []health.Sample
	summaries []health.Summary
	cursor    int
}

func (m Model) updateHealthData(msg HealthLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus("loading health: "+msg.Err.Error(), true)
	}
	m.health.samples = msg.Samples
	m.health.summaries = msg.Summaries
	if m.health.cursor >= len(m.health.summaries) {
		m.health.cursor = 0
	}
	return m, nil
}

func (m Model) updateHealthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := &m.health
	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.cursor < len(h.summaries)-1 {
			h.cursor++
		}

	case "x":
		if h.cursor < len(h.summaries) {
			metric := h.summaries[h.cursor].Metric
			path := metric + ".svg"
			return m, ExportChartCmd(h.samples, metric, path)
		}

	case "r":
		if h.root.ID != "" {
			return m, LoadHealthCmd(m.store, h.root.ID)
		}
	}
	return m, nil
}

// trendArrow maps a regression slope to a direction indicator.
func trendArrow(slope float64) string {
	switch {
	case slope > 0.01:
		return "↑"
	case slope < -0.01:
		return "↓"
	default:
		return "→"
	}
}

func (m Model) viewHealth() string {
	h := m.health
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("♥ Health"))
	sb.WriteString("\n\n")

	if len(h.summaries) == 0 {
		sb.WriteString(t.MutedText.Render("  no samples recorded"))
		sb.WriteString("\n")
		return sb.String()
	}

	header := fmt.Sprintf("  %-14s %6s %10s %10s %10s %10s  %s",
		"metric", "n", "mean", "stddev", "min", "max", "trend")
	sb.WriteString(t.SecondaryText.Render(header))
	sb.WriteString("\n")

	for i, s := range h.summaries {
		line := fmt.Sprintf("  %-14s %6d %10.1f %10.1f %10.1f %10.1f  %s",
			truncateTo(s.Metric, 14), s.Count, s.Mean, s.StdDev, s.Min, s.Max, trendArrow(s.Trend))
		if i == h.cursor {
			sb.WriteString(t.Selected.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(t.MutedText.Render(fmt.Sprintf("  %d samples total", len(h.samples))))
	sb.WriteString("\n")

	return sb.String()
}
