package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// financeState drives the finance pane: amount-carrying events below the
// finance context root plus their running balance.
type financeState struct {
	root    model.Resource
	events  []model.Resource
	balance float64
	cursor  int
}

func (m Model) updateFinanceData(msg FinanceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus("loading finance: "+msg.Err.Error(), true)
	}
	m.finance.events = msg.Resources
	m.finance.balance = msg.Balance
	if m.finance.cursor >= len(m.finance.events) {
		m.finance.cursor = 0
	}
	return m, nil
}

func (m Model) updateFinanceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.finance
	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(f.events)-1 {
			f.cursor++
		}

	case "y":
		if f.cursor < len(f.events) {
			return m, CopyIDCmd(f.events[f.cursor].ID)
		}

	case "r":
		if f.root.ID != "" {
			return m, LoadFinanceCmd(m.store, f.root.ID)
		}
	}
	return m, nil
}

// eventAmount reads the amount attached to a finance event. Amounts are
// stored either as JSON numbers or as decimal strings; zero when missing
// or unparseable.
func eventAmount(r model.Resource) float64 {
	switch v := r.MetaData["amount"].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func (m Model) viewFinance() string {
	f := m.finance
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("$ Finance"))
	sb.WriteString("  ")
	balStyle := t.Renderer.NewStyle().Foreground(t.Active).Bold(true)
	if f.balance < 0 {
		balStyle = t.ErrorText
	}
	sb.WriteString(balStyle.Render(fmt.Sprintf("balance %+.2f", f.balance)))
	sb.WriteString("\n\n")

	if len(f.events) == 0 {
		sb.WriteString(t.MutedText.Render("  no transactions"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, r := range f.events {
		amount := eventAmount(r)
		amountStr := fmt.Sprintf("%+10.2f", amount)
		if amount < 0 {
			amountStr = t.ErrorText.Render(amountStr)
		} else {
			amountStr = t.Renderer.NewStyle().Foreground(t.Active).Render(amountStr)
		}
		line := fmt.Sprintf("  %s %s  %s",
			padRight(truncateTo(r.Title, 40), 40),
			amountStr,
			t.MutedText.Render(FormatTimeRel(r.CreatedAt)))
		if i == f.cursor {
			sb.WriteString(t.Selected.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
