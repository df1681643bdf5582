package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/internal/store"
	"github.com/vanderheijden86/lifeos/pkg/launcher"
	"github.com/vanderheijden86/lifeos/pkg/model"
)

// browserMode is the input state of the resources browser.
type browserMode int

const (
	browserBrowse browserMode = iota
	browserSearch
	browserForm
	browserConfirmDelete
	browserDetail
	browserMenu
)

// menuAction is one entry in the browser's context menu.
type menuAction struct {
	label string
	key   string
}

// contextMenuFor lists the actions available on a resource.
func contextMenuFor(r model.Resource) []menuAction {
	actions := []menuAction{{"Open", "open"}}
	if r.Type == model.ResourceTask {
		actions = append(actions, menuAction{"Toggle done", "toggle"})
	}
	actions = append(actions,
		menuAction{"Edit", "edit"},
		menuAction{"Copy id", "copy"},
		menuAction{"Delete", "delete"},
	)
	return actions
}

// browserState holds the generic resources browser: a context-root-bounded
// folder listing with a rendered tree preview of the selection.
type browserState struct {
	app       launcher.App
	nav       NavState
	list      list.Model
	resources []model.Resource
	counts    map[string]int
	preview   string

	mode        browserMode
	searchInput textinput.Model
	form        ResourceForm
	deleteID    string
	detail      model.Resource
	detailVP    viewport.Model
	menuTarget  model.Resource
	menuActions []menuAction
	menuCursor  int

	width  int
	height int
}

func newBrowserState(theme Theme, compact bool) browserState {
	delegate := ResourceDelegate{Theme: theme, CompactRows: compact}
	l := list.New(nil, delegate, 80, 20)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	si := textinput.New()
	si.Placeholder = "search"
	si.CharLimit = 100
	si.Width = 40

	return browserState{list: l, searchInput: si}
}

// mount points the browser at an app's context root.
func (b *browserState) mount(app launcher.App, root model.Resource) {
	b.app = app
	b.nav = NewNavState(root)
	b.mode = browserBrowse
	b.preview = ""
	b.searchInput.SetValue("")
}

func (b *browserState) setSize(width, height int) {
	b.width = width
	b.height = height
	listHeight := height - 10
	if listHeight < 5 {
		listHeight = 5
	}
	b.list.SetSize(width-2, listHeight)
	b.form.SetSize(width, height)
	b.detailVP.Width = width - 2
	b.detailVP.Height = height - 8
	if b.detailVP.Height < 3 {
		b.detailVP.Height = 3
	}
}

// reloadCmd reloads the current folder's children.
func (b *browserState) reloadCmd(s *store.Store) tea.Cmd {
	if b.nav.ContextRootID() == "" {
		return nil
	}
	return LoadChildrenCmd(s, b.nav.CurrentID(), b.nav.SearchQuery)
}

// selected returns the resource under the cursor.
func (b *browserState) selected() (model.Resource, bool) {
	item, ok := b.list.SelectedItem().(ResourceItem)
	if !ok {
		return model.Resource{}, false
	}
	return item.Resource, true
}

func (b *browserState) selectedID() string {
	if r, ok := b.selected(); ok {
		return r.ID
	}
	return ""
}

// updateBrowserData applies freshly loaded children to the list.
func (m Model) updateBrowserData(msg ChildrenLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus("loading: "+msg.Err.Error(), true)
	}
	if msg.ParentID != m.browser.nav.CurrentID() {
		// Stale load from before a navigation; drop it.
		return m, nil
	}

	m.browser.resources = msg.Resources
	m.browser.counts = msg.Counts
	items := make([]list.Item, len(msg.Resources))
	for i, r := range msg.Resources {
		items[i] = ResourceItem{Resource: r, Count: msg.Counts[r.ID]}
	}
	m.browser.list.SetItems(items)
	m.browser.preview = ""

	if id := m.browser.selectedID(); id != "" {
		return m, LoadPreviewCmd(m.store, m.engine, id)
	}
	return m, nil
}

func (m Model) updateBrowserKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser

	switch b.mode {
	case browserForm:
		return m.updateBrowserFormKeys(msg)
	case browserSearch:
		return m.updateBrowserSearchKeys(msg)
	case browserConfirmDelete:
		return m.updateBrowserConfirmKeys(msg)
	case browserMenu:
		return m.updateBrowserMenuKeys(msg)
	case browserDetail:
		switch msg.String() {
		case "esc", "q", "enter":
			b.mode = browserBrowse
			return m, nil
		}
		var cmd tea.Cmd
		b.detailVP, cmd = b.detailVP.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		// At the context root esc leaves the pane; deeper it goes up.
		if !b.nav.Up() {
			return m, m.leaveToLauncher()
		}
		return m, b.reloadCmd(m.store)

	case "backspace", "left", "h":
		if b.nav.Up() {
			return m, b.reloadCmd(m.store)
		}
		return m, nil

	case "enter", "right", "l":
		r, ok := b.selected()
		if !ok {
			return m, nil
		}
		if r.Type.IsContainer() {
			b.nav.Enter(r)
			return m, b.reloadCmd(m.store)
		}
		m.openDetail(r)
		return m, nil

	case " ":
		if r, ok := b.selected(); ok && r.Type == model.ResourceTask {
			return m, ToggleTaskCmd(m.store, r)
		}
		return m, nil

	case "n":
		b.form = NewCreateForm(m.theme)
		b.form.SetSize(m.width, m.height)
		b.mode = browserForm
		return m, nil

	case "e":
		if r, ok := b.selected(); ok {
			b.form = NewEditForm(r, m.theme)
			b.form.SetSize(m.width, m.height)
			b.mode = browserForm
		}
		return m, nil

	case "d":
		if r, ok := b.selected(); ok {
			b.deleteID = r.ID
			b.mode = browserConfirmDelete
		}
		return m, nil

	case "/":
		b.searchInput.SetValue(b.nav.SearchQuery)
		b.searchInput.Focus()
		b.mode = browserSearch
		return m, nil

	case "y":
		if r, ok := b.selected(); ok {
			return m, CopyIDCmd(r.ID)
		}
		return m, nil

	case "m":
		if r, ok := b.selected(); ok {
			b.menuTarget = r
			b.menuActions = contextMenuFor(r)
			b.menuCursor = 0
			b.mode = browserMenu
		}
		return m, nil

	case "r":
		return m, b.reloadCmd(m.store)
	}

	// Everything else drives the list; reload the preview when the cursor
	// lands on a different resource.
	before := b.selectedID()
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	after := b.selectedID()
	if after != "" && after != before {
		return m, tea.Batch(cmd, LoadPreviewCmd(m.store, m.engine, after))
	}
	return m, cmd
}

func (m Model) updateBrowserFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser
	var cmd tea.Cmd
	b.form, cmd = b.form.Update(msg)

	if b.form.IsCancelRequested() {
		b.mode = browserBrowse
		return m, nil
	}
	if b.form.IsSaveRequested() {
		if b.form.TitleValue() == "" {
			b.mode = browserBrowse
			return m, m.setStatus("title is required", true)
		}
		if b.form.IsCreateMode() {
			b.mode = browserBrowse
			return m, CreateResourceCmd(m.store, b.nav.CurrentID(), b.form.TypeValue(), b.form.TitleValue(), b.form.MetaValue())
		}
		r, ok := b.selected()
		if !ok {
			b.mode = browserBrowse
			return m, nil
		}
		b.mode = browserBrowse
		return m, UpdateResourceCmd(m.store, b.form.Apply(r))
	}
	return m, cmd
}

func (m Model) updateBrowserSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser
	switch msg.String() {
	case "esc":
		b.mode = browserBrowse
		if b.nav.SearchQuery != "" {
			b.nav.SearchQuery = ""
			return m, b.reloadCmd(m.store)
		}
		return m, nil
	case "enter":
		b.mode = browserBrowse
		b.nav.SearchQuery = strings.TrimSpace(b.searchInput.Value())
		return m, b.reloadCmd(m.store)
	}
	var cmd tea.Cmd
	b.searchInput, cmd = b.searchInput.Update(msg)
	return m, cmd
}

// openDetail switches to the full-screen detail view for a resource.
func (m *Model) openDetail(r model.Resource) {
	b := &m.browser
	b.detail = r
	body := r.Description
	if body == "" {
		body = r.MetaData.String("body")
	}
	if body != "" {
		b.detailVP.SetContent(m.md.Render(body))
	} else {
		b.detailVP.SetContent(m.theme.MutedText.Render("no description"))
	}
	b.detailVP.GotoTop()
	b.mode = browserDetail
}

func (m Model) updateBrowserMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser
	switch msg.String() {
	case "esc", "q", "m":
		b.mode = browserBrowse
		return m, nil

	case "up", "k":
		if b.menuCursor > 0 {
			b.menuCursor--
		}
	case "down", "j":
		if b.menuCursor < len(b.menuActions)-1 {
			b.menuCursor++
		}

	case "enter":
		action := b.menuActions[b.menuCursor]
		r := b.menuTarget
		b.mode = browserBrowse
		switch action.key {
		case "open":
			if r.Type.IsContainer() {
				b.nav.Enter(r)
				return m, b.reloadCmd(m.store)
			}
			m.openDetail(r)
			return m, nil
		case "toggle":
			return m, ToggleTaskCmd(m.store, r)
		case "edit":
			b.form = NewEditForm(r, m.theme)
			b.form.SetSize(m.width, m.height)
			b.mode = browserForm
			return m, nil
		case "copy":
			return m, CopyIDCmd(r.ID)
		case "delete":
			b.deleteID = r.ID
			b.mode = browserConfirmDelete
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateBrowserConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := &m.browser
	switch msg.String() {
	case "y", "enter":
		id := b.deleteID
		b.deleteID = ""
		b.mode = browserBrowse
		return m, DeleteResourceCmd(m.store, id)
	case "n", "esc":
		b.deleteID = ""
		b.mode = browserBrowse
	}
	return m, nil
}

// viewBrowser renders the resources browser with its breadcrumb trail,
// folder list and tree preview.
func (m Model) viewBrowser() string {
	b := m.browser
	t := m.theme

	if b.mode == browserForm {
		return b.form.View()
	}
	if b.mode == browserDetail {
		return m.viewResourceDetail(b.detail)
	}

	var sb strings.Builder
	sb.WriteString(t.Header.Render(b.app.Icon + " " + b.app.Title))
	sb.WriteString("\n")
	sb.WriteString(m.viewBreadcrumbs())
	sb.WriteString("\n")

	if b.mode == browserSearch {
		sb.WriteString(t.PrimaryBold.Render("/ "))
		sb.WriteString(b.searchInput.View())
		sb.WriteString("\n")
	} else if b.nav.SearchQuery != "" {
		sb.WriteString(t.SecondaryText.Render("filter: " + b.nav.SearchQuery))
		sb.WriteString("\n")
	}

	if len(b.resources) == 0 {
		sb.WriteString("\n")
		if b.nav.SearchQuery != "" {
			sb.WriteString(t.MutedText.Render("  no matches"))
		} else {
			sb.WriteString(t.MutedText.Render("  empty · press n to add something"))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(b.list.View())
		sb.WriteString("\n")
	}

	if b.mode == browserConfirmDelete {
		sb.WriteString("\n")
		sb.WriteString(t.ErrorText.Render("delete this resource and everything under it? [y/n]"))
		sb.WriteString("\n")
	} else if b.mode == browserMenu {
		sb.WriteString("\n")
		sb.WriteString(m.viewContextMenu())
		sb.WriteString("\n")
	} else if b.preview != "" {
		sb.WriteString("\n")
		sb.WriteString(t.MutedText.Render("── preview ──"))
		sb.WriteString("\n")
		sb.WriteString(clampLines(b.preview, 8))
		sb.WriteString("\n")
	}

	return sb.String()
}

// viewBreadcrumbs renders the trail from the context root to the current
// folder. The trail is bounded below by the context root.
func (m Model) viewBreadcrumbs() string {
	t := m.theme
	trail := m.browser.nav.Trail()
	parts := make([]string, len(trail))
	for i, crumb := range trail {
		label := truncateTo(crumb.Title, 24)
		if i == len(trail)-1 {
			parts[i] = t.CrumbActive.Render(label)
		} else {
			parts[i] = t.Crumb.Render(label)
		}
	}
	return strings.Join(parts, t.Crumb.Render(" › "))
}

// viewResourceDetail shows one resource full-screen with its description
// rendered as markdown.
func (m Model) viewResourceDetail(r model.Resource) string {
	t := m.theme
	var sb strings.Builder

	icon, iconColor := t.GetTypeIcon(r.Type)
	sb.WriteString(t.Header.Render(icon + " " + r.Title))
	sb.WriteString("\n\n")
	sb.WriteString(t.Renderer.NewStyle().Foreground(iconColor).Render(string(r.Type)))
	sb.WriteString("  ")
	sb.WriteString(RenderStatusBadge(t, r.Status))
	sb.WriteString("  ")
	sb.WriteString(t.MutedText.Render("updated " + FormatTimeRel(r.UpdatedAt)))
	sb.WriteString("\n")
	if v := r.Variant(); v != "" {
		sb.WriteString(t.SecondaryText.Render("variant: " + v))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.browser.detailVP.View())
	sb.WriteString("\n")

	return sb.String()
}

// viewContextMenu renders the action menu for the targeted resource.
func (m Model) viewContextMenu() string {
	b := m.browser
	t := m.theme
	var sb strings.Builder

	sb.WriteString(t.PrimaryBold.Render(truncateTo(b.menuTarget.Title, 40)))
	sb.WriteString("\n")
	for i, action := range b.menuActions {
		if i == b.menuCursor {
			sb.WriteString(t.Selected.Render("▸ " + action.label))
		} else {
			sb.WriteString("  " + action.label)
		}
		sb.WriteString("\n")
	}

	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Render(strings.TrimRight(sb.String(), "\n"))
}

// clampLines truncates multi-line text to at most n lines.
func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
