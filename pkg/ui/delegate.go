package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// ResourceDelegate renders resource rows in a bubbles list.
//
// Layout: [sel] [type icon] [status] [title...] [count] [age]
// Right-hand columns drop out as the terminal narrows.
type ResourceDelegate struct {
	Theme       Theme
	CompactRows bool
}

func (d ResourceDelegate) Height() int {
	return 1
}

func (d ResourceDelegate) Spacing() int {
	if d.CompactRows {
		return 0
	}
	return 1
}

func (d ResourceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d ResourceDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(ResourceItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Keep one cell of slack so the row never wraps on the exact edge.
	width--

	isSelected := index == m.Index()
	r := i.Resource

	icon, iconColor := t.GetTypeIcon(r.Type)
	iconWidth := lipgloss.Width(icon)

	// Right side: child count for containers, then age.
	rightWidth := 0
	var rightParts []string
	if width > 50 {
		if r.Type.IsContainer() {
			countStr := fmt.Sprintf("%3d ▸", i.Count)
			rightParts = append(rightParts, t.SecondaryText.Render(countStr))
			rightWidth += lipgloss.Width(countStr) + 1
		}
		ageStr := fmt.Sprintf("%6s", FormatTimeRel(r.UpdatedAt))
		rightParts = append(rightParts, t.MutedText.Render(ageStr))
		rightWidth += 7
	}

	statusBadge := RenderStatusBadge(t, r.Status)
	leftFixedWidth := 2 + iconWidth + 1 + lipgloss.Width(statusBadge) + 1

	titleWidth := width - leftFixedWidth - rightWidth - 2
	if titleWidth < 5 {
		titleWidth = 5
	}
	title := padRight(truncateTo(r.Title, titleWidth), titleWidth)

	var left strings.Builder
	if isSelected {
		left.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		left.WriteString("  ")
	}
	left.WriteString(t.Renderer.NewStyle().Foreground(iconColor).Render(icon))
	left.WriteString(" ")
	left.WriteString(statusBadge)
	left.WriteString(" ")

	titleStyle := t.Renderer.NewStyle()
	switch {
	case r.Status == model.StatusDone:
		titleStyle = titleStyle.Foreground(t.Done).Strikethrough(true)
	case isSelected:
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	default:
		titleStyle = titleStyle.Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"})
	}
	left.WriteString(titleStyle.Render(title))

	rightSide := strings.Join(rightParts, " ")
	padding := width - lipgloss.Width(left.String()) - lipgloss.Width(rightSide)
	if padding < 0 {
		padding = 0
	}

	row := left.String() + strings.Repeat(" ", padding) + rightSide

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if isSelected {
		row = rowStyle.Background(t.Highlight).Render(row)
	} else {
		row = rowStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
