package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/internal/store"
)

// householdRow is one selectable line in the household pane: either a list
// header or a checklist item.
type householdRow struct {
	item     *store.Item
	listID   string
	listName string
}

// householdState drives the household pane: member profiles on top, the
// checklist categories and their items below.
type householdState struct {
	households []store.Household
	profiles   []store.Profile
	categories []store.Category
	lists      []store.List
	items      []store.Item

	rows   []householdRow
	cursor int

	adding bool
	input  textinput.Model
}

func newHouseholdState() householdState {
	ti := textinput.New()
	ti.Placeholder = "new item"
	ti.CharLimit = 200
	ti.Width = 40
	return householdState{input: ti}
}

// rebuildRows flattens lists and items into selectable rows. Headers are
// skipped by cursor movement but kept for rendering.
func (h *householdState) rebuildRows() {
	h.rows = h.rows[:0]
	for _, l := range h.lists {
		h.rows = append(h.rows, householdRow{listID: l.ID, listName: l.Name})
		for i := range h.items {
			if h.items[i].ListID == l.ID {
				h.rows = append(h.rows, householdRow{item: &h.items[i], listID: l.ID})
			}
		}
	}
	if h.cursor >= len(h.rows) {
		h.cursor = 0
	}
	h.snapCursor(1)
}

// snapCursor moves the cursor off header rows in the given direction.
func (h *householdState) snapCursor(dir int) {
	for h.cursor >= 0 && h.cursor < len(h.rows) && h.rows[h.cursor].item == nil {
		h.cursor += dir
	}
	if h.cursor < 0 || h.cursor >= len(h.rows) {
		h.cursor = 0
		// First row may be a header with no items under it.
		for h.cursor < len(h.rows) && h.rows[h.cursor].item == nil {
			h.cursor++
		}
		if h.cursor >= len(h.rows) {
			h.cursor = 0
		}
	}
}

// currentListID returns the list the cursor is in, for adding items.
func (h *householdState) currentListID() string {
	if h.cursor < len(h.rows) && h.rows[h.cursor].listID != "" {
		return h.rows[h.cursor].listID
	}
	if len(h.lists) > 0 {
		return h.lists[0].ID
	}
	return ""
}

func (m Model) updateHouseholdData(msg HouseholdLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus("loading household: "+msg.Err.Error(), true)
	}
	m.household.households = msg.Households
	m.household.profiles = msg.Profiles
	m.household.categories = msg.Categories
	m.household.lists = msg.Lists
	m.household.items = msg.Items
	m.household.rebuildRows()
	return m, nil
}

func (m Model) updateHouseholdKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := &m.household

	if h.adding {
		switch msg.String() {
		case "esc":
			h.adding = false
			h.input.SetValue("")
			return m, nil
		case "enter":
			label := strings.TrimSpace(h.input.Value())
			h.adding = false
			h.input.SetValue("")
			if label == "" {
				return m, nil
			}
			listID := h.currentListID()
			if listID == "" {
				return m, m.setStatus("no list to add to", true)
			}
			return m, AddItemCmd(m.store, listID, label)
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		return m, m.leaveToLauncher()

	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
			h.snapCursor(-1)
		}
	case "down", "j":
		if h.cursor < len(h.rows)-1 {
			h.cursor++
			h.snapCursor(1)
		}

	case " ", "enter":
		if h.cursor < len(h.rows) && h.rows[h.cursor].item != nil {
			return m, ToggleItemCmd(m.store, h.rows[h.cursor].item.ID)
		}

	case "a":
		h.adding = true
		h.input.Focus()
		return m, nil

	case "r":
		return m, LoadHouseholdCmd(m.store)
	}
	return m, nil
}

func (m Model) viewHousehold() string {
	h := m.household
	t := m.theme
	var sb strings.Builder

	title := "⌂ Household"
	if len(h.households) > 0 {
		title = "⌂ " + h.households[0].Name
	}
	sb.WriteString(t.Header.Render(title))
	sb.WriteString("\n\n")

	if len(h.profiles) > 0 {
		var members []string
		for _, p := range h.profiles {
			members = append(members, p.Avatar+" "+p.DisplayName)
		}
		sb.WriteString(t.SecondaryText.Render(strings.Join(members, "   ")))
		sb.WriteString("\n\n")
	}

	if len(h.rows) == 0 {
		sb.WriteString(t.MutedText.Render("  no lists yet"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, row := range h.rows {
		if row.item == nil {
			sb.WriteString(t.PrimaryBold.Render(row.listName))
			sb.WriteString("\n")
			continue
		}
		it := row.item
		check := "[ ]"
		label := it.Label
		if it.Done {
			check = "[x]"
			label = t.MutedText.Strikethrough(true).Render(label)
		}
		line := fmt.Sprintf("  %s %s", check, label)
		if i == h.cursor {
			sb.WriteString(t.Selected.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	if h.adding {
		sb.WriteString("\n")
		sb.WriteString(t.PrimaryBold.Render("+ "))
		sb.WriteString(h.input.View())
		sb.WriteString("\n")
	}

	return sb.String()
}
