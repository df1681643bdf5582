package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lifeos/internal/store"
	"github.com/vanderheijden86/lifeos/pkg/config"
	"github.com/vanderheijden86/lifeos/pkg/launcher"
	"github.com/vanderheijden86/lifeos/pkg/model"
	"github.com/vanderheijden86/lifeos/pkg/nodes"
)

func testTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

func testModel(t *testing.T) (Model, *store.Store) {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.SeedDemo(); err != nil {
		t.Fatal(err)
	}
	m := NewModel(s, testTheme(), Options{Config: config.DefaultConfig()})
	return m, s
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPaneFor(t *testing.T) {
	cases := map[string]Pane{
		"household": PaneHousehold,
		"health":    PaneHealth,
		"finance":   PaneFinance,
		"chat":      PaneChat,
		"feed":      PaneFeed,
		"settings":  PaneSettings,
		"sandbox":   PaneSandbox,
		"tasks":     PaneBrowser,
		"":          PaneBrowser,
	}
	for name, want := range cases {
		if got := paneFor(name); got != want {
			t.Errorf("paneFor(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestViewBeforeReady(t *testing.T) {
	m, _ := testModel(t)
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("unready model should show initializing screen")
	}
}

func TestReadyTimeoutFallback(t *testing.T) {
	m, _ := testModel(t)
	next, _ := m.Update(ReadyTimeoutMsg{})
	m = next.(Model)
	if !m.ready || m.width != 80 {
		t.Errorf("ready=%v width=%d after timeout", m.ready, m.width)
	}

	// A later real size report wins.
	next, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.width != 120 {
		t.Errorf("width %d after WindowSizeMsg", m.width)
	}
}

func TestLauncherNavigation(t *testing.T) {
	m, s := testModel(t)
	m = sized(t, m)

	apps, err := launcher.Discover(s, m.cfg)
	if err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(AppsLoadedMsg{Apps: apps})
	m = next.(Model)

	if m.appCursor != 0 {
		t.Fatalf("cursor %d", m.appCursor)
	}
	next, _ = m.Update(key("right"))
	m = next.(Model)
	if m.appCursor != 1 {
		t.Errorf("cursor %d after right", m.appCursor)
	}
	next, _ = m.Update(key("left"))
	m = next.(Model)
	if m.appCursor != 0 {
		t.Errorf("cursor %d after left", m.appCursor)
	}

	view := m.View()
	for _, want := range []string{"Tasks", "Household", "Settings"} {
		if !strings.Contains(view, want) {
			t.Errorf("launcher view missing %q", want)
		}
	}
}

func TestOpenSettingsPane(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)
	next, _ := m.Update(AppsLoadedMsg{Apps: launcher.SystemApps})
	m = next.(Model)

	cmd := m.openApp(launcher.App{ID: "settings", Title: "Settings", Pane: "settings", System: true})
	if m.pane != PaneSettings {
		t.Fatalf("pane %v", m.pane)
	}
	if cmd != nil {
		t.Error("settings pane needs no load command")
	}
	if !strings.Contains(m.View(), "Settings") {
		t.Error("settings view missing header")
	}
}

func TestMountBrowser(t *testing.T) {
	m, s := testModel(t)
	m = sized(t, m)

	roots, err := s.ContextRoots()
	if err != nil {
		t.Fatal(err)
	}
	var tasksRoot model.Resource
	for _, r := range roots {
		if r.MetaData.String("slug") == "tasks" {
			tasksRoot = r
		}
	}
	if tasksRoot.ID == "" {
		t.Fatal("seed has no tasks root")
	}

	app := launcher.App{ID: "tasks", Title: "Tasks", Pane: "tasks", RootID: tasksRoot.ID, System: true}
	next, cmd := m.Update(MountedMsg{App: app, Root: tasksRoot})
	m = next.(Model)

	if m.pane != PaneBrowser {
		t.Fatalf("pane %v", m.pane)
	}
	if m.browser.nav.ContextRootID() != tasksRoot.ID {
		t.Error("browser not mounted at tasks root")
	}
	if cmd == nil {
		t.Fatal("mount should trigger a children load")
	}

	// Run the load command and feed the result back.
	msg := cmd()
	loaded, ok := msg.(ChildrenLoadedMsg)
	if !ok {
		t.Fatalf("unexpected msg %T", msg)
	}
	if loaded.Err != nil {
		t.Fatal(loaded.Err)
	}
	if len(loaded.Resources) == 0 {
		t.Fatal("seeded tasks root has children")
	}
	next, _ = m.Update(loaded)
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, loaded.Resources[0].Title) {
		t.Errorf("browser view missing first child %q", loaded.Resources[0].Title)
	}
}

func TestStaleChildrenLoadDropped(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)
	m.pane = PaneBrowser
	m.browser.mount(launcher.App{ID: "tasks", Title: "Tasks"}, model.Resource{ID: "root", Title: "Tasks"})

	next, _ := m.Update(ChildrenLoadedMsg{
		ParentID:  "some-other-folder",
		Resources: []model.Resource{{ID: "x", Title: "X"}},
	})
	m = next.(Model)
	if len(m.browser.resources) != 0 {
		t.Error("stale load was applied")
	}
}

func TestBrowserEscAtRootReturnsToLauncher(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)
	m.pane = PaneBrowser
	m.browser.mount(launcher.App{ID: "tasks", Title: "Tasks"}, model.Resource{ID: "root", Title: "Tasks"})

	next, _ := m.Update(key("esc"))
	m = next.(Model)
	if m.pane != PaneLauncher {
		t.Errorf("pane %v after esc at root", m.pane)
	}
}

func TestStatusExpiry(t *testing.T) {
	m, _ := testModel(t)
	cmd := m.setStatus("hello", false)
	if m.statusText != "hello" {
		t.Fatalf("status %q", m.statusText)
	}
	if cmd == nil {
		t.Fatal("no expiry command")
	}

	// An expiry for an older status must not clear a newer one.
	stale := statusExpireMsg{seq: m.statusSeq - 1}
	next, _ := m.Update(stale)
	m = next.(Model)
	if m.statusText != "hello" {
		t.Error("stale expiry cleared status")
	}

	next, _ = m.Update(statusExpireMsg{seq: m.statusSeq})
	m = next.(Model)
	if m.statusText != "" {
		t.Error("status not cleared")
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestHealthDataAndView(t *testing.T) {
	m, s := testModel(t)
	m = sized(t, m)
	m.pane = PaneHealth

	root, err := s.EnsureContextRoot("health", "Health")
	if err != nil {
		t.Fatal(err)
	}
	m.health.root = root

	msg := LoadHealthCmd(s, root.ID)().(HealthLoadedMsg)
	if msg.Err != nil {
		t.Fatal(msg.Err)
	}
	if len(msg.Summaries) == 0 {
		t.Fatal("seed has health samples")
	}
	next, _ := m.Update(msg)
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "steps") {
		t.Errorf("health view missing steps metric:\n%s", view)
	}
}

func TestFinanceBalance(t *testing.T) {
	m, s := testModel(t)
	m = sized(t, m)
	m.pane = PaneFinance

	root, err := s.EnsureContextRoot("finance", "Finance")
	if err != nil {
		t.Fatal(err)
	}
	m.finance.root = root

	msg := LoadFinanceCmd(s, root.ID)().(FinanceLoadedMsg)
	if msg.Err != nil {
		t.Fatal(msg.Err)
	}
	next, _ := m.Update(msg)
	m = next.(Model)

	if len(m.finance.events) == 0 {
		t.Fatal("seed has finance events")
	}
	if !strings.Contains(m.View(), "balance") {
		t.Error("finance view missing balance")
	}
}

func TestChatSendReload(t *testing.T) {
	m, s := testModel(t)
	m = sized(t, m)
	m.pane = PaneChat

	root, err := s.EnsureContextRoot("chat", "Chat")
	if err != nil {
		t.Fatal(err)
	}
	m.chat.root = root
	m.chat.input.SetValue("hello there")

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("enter should send")
	}
	msg := cmd().(ChatLoadedMsg)
	if msg.Err != nil {
		t.Fatal(msg.Err)
	}
	found := false
	for _, r := range msg.Messages {
		if r.Title == "hello there" {
			found = true
		}
	}
	if !found {
		t.Error("sent message not in transcript")
	}
	if m.chat.input.Value() != "" {
		t.Error("input not cleared after send")
	}
}

func TestSandboxRender(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)
	m.pane = PaneSandbox

	doc := []byte(`{"id":"root","type":"container","variant":"folder","title":"Demo","children":[{"id":"a","type":"item","variant":"task-row","title":"Try it"}]}`)
	tree, err := nodes.DecodeDocument(doc)
	if err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(SandboxLoadedMsg{Tree: tree})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "Demo") || !strings.Contains(view, "Try it") {
		t.Errorf("sandbox render missing nodes:\n%s", view)
	}
	if strings.Contains(view, "-sandbox") {
		t.Errorf("startup hint shown over a loaded document:\n%s", view)
	}
}

func TestSandboxHintWithoutDocument(t *testing.T) {
	m, _ := testModel(t)
	m = sized(t, m)
	m.pane = PaneSandbox

	view := m.View()
	if !strings.Contains(view, "-sandbox") {
		t.Errorf("expected startup hint when nothing is loaded:\n%s", view)
	}
}
