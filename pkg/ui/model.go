package ui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/internal/store"
	"github.com/vanderheijden86/lifeos/pkg/config"
	"github.com/vanderheijden86/lifeos/pkg/launcher"
	"github.com/vanderheijden86/lifeos/pkg/model"
	"github.com/vanderheijden86/lifeos/pkg/nodes"
	"github.com/vanderheijden86/lifeos/pkg/watcher"
)

// Pane identifies the active screen.
type Pane int

const (
	PaneLauncher Pane = iota
	PaneBrowser
	PaneHousehold
	PaneHealth
	PaneFinance
	PaneChat
	PaneFeed
	PaneSettings
	PaneSandbox
)

// paneFor maps a launcher pane name to the Pane enum. Discovered apps have
// no pane name and open the generic browser.
func paneFor(name string) Pane {
	switch name {
	case "household":
		return PaneHousehold
	case "health":
		return PaneHealth
	case "finance":
		return PaneFinance
	case "chat":
		return PaneChat
	case "feed":
		return PaneFeed
	case "settings":
		return PaneSettings
	case "sandbox":
		return PaneSandbox
	default:
		return PaneBrowser
	}
}

// MountedMsg is sent when an app's context root is resolved and the pane
// can start loading.
type MountedMsg struct {
	App  launcher.App
	Root model.Resource
	Err  error
}

// MountCmd resolves an app's context root, creating it on first open for
// system apps that have none yet.
func MountCmd(s *store.Store, app launcher.App) tea.Cmd {
	return func() tea.Msg {
		if app.RootID != "" {
			r, err := s.GetResource(app.RootID)
			return MountedMsg{App: app, Root: r, Err: err}
		}
		r, err := s.EnsureContextRoot(app.ID, app.Title)
		return MountedMsg{App: app, Root: r, Err: err}
	}
}

// Model is the main Bubble Tea model for lifeos.
type Model struct {
	store *store.Store
	cfg   config.Config
	watch *watcher.Watcher

	theme    Theme
	registry *nodes.Registry
	engine   *nodes.Engine
	md       *Markdown

	width  int
	height int
	ready  bool

	pane      Pane
	apps      []launcher.App
	appCursor int

	browser   browserState
	household householdState
	health    healthState
	finance   financeState
	chat      chatState
	feed      feedState
	sandbox   sandboxState

	sandboxPath string

	statusText    string
	statusIsError bool
	statusSeq     int

	booted   bool
	quitting bool
}

// Options configure the model beyond its required collaborators.
type Options struct {
	Config      config.Config
	Watcher     *watcher.Watcher
	SandboxPath string
}

// NewModel builds the top-level model.
func NewModel(s *store.Store, theme Theme, opts Options) Model {
	registry := nodes.DefaultRegistry()
	engine := nodes.NewEngine(registry, theme.NodeStyles(), 80)

	m := Model{
		store:       s,
		cfg:         opts.Config,
		watch:       opts.Watcher,
		theme:       theme,
		registry:    registry,
		engine:      engine,
		md:          NewMarkdown(80),
		pane:        PaneLauncher,
		sandboxPath: opts.SandboxPath,
	}
	m.browser = newBrowserState(theme, opts.Config.UI.CompactRows)
	m.household = newHouseholdState()
	m.chat = newChatState()
	return m
}

// Init starts app discovery, the ready fallback and the file watcher pump.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadAppsCmd(m.store, m.cfg),
		ReadyTimeoutCmd(),
	}
	if m.watch != nil {
		cmds = append(cmds, WatchFileCmd(m.watch))
	}
	return tea.Batch(cmds...)
}

// setStatus swaps the status-line message and arms its expiry.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusText = text
	m.statusIsError = isError
	m.statusSeq++
	return statusExpireCmd(m.statusSeq)
}

// openApp routes a launcher selection to its pane.
func (m *Model) openApp(app launcher.App) tea.Cmd {
	target := PaneBrowser
	if app.System {
		target = paneFor(app.Pane)
	}
	switch target {
	case PaneFeed:
		m.pane = PaneFeed
		return LoadFeedCmd(m.store, 50)
	case PaneSettings:
		m.pane = PaneSettings
		return nil
	case PaneSandbox:
		m.pane = PaneSandbox
		if m.sandboxPath == "" {
			m.sandbox = sandboxState{}
			return nil
		}
		return LoadSandboxCmd(m.sandboxPath)
	case PaneHousehold:
		m.pane = PaneHousehold
		return LoadHouseholdCmd(m.store)
	default:
		// Browser, health, finance and chat all mount a context root first.
		return MountCmd(m.store, app)
	}
}

// refreshPane reloads the data behind the active pane. Used after the
// database changes on disk and after writes.
func (m *Model) refreshPane() tea.Cmd {
	switch m.pane {
	case PaneLauncher:
		return LoadAppsCmd(m.store, m.cfg)
	case PaneBrowser:
		return m.browser.reloadCmd(m.store)
	case PaneHousehold:
		return LoadHouseholdCmd(m.store)
	case PaneHealth:
		if m.health.root.ID != "" {
			return LoadHealthCmd(m.store, m.health.root.ID)
		}
	case PaneFinance:
		if m.finance.root.ID != "" {
			return LoadFinanceCmd(m.store, m.finance.root.ID)
		}
	case PaneChat:
		if m.chat.root.ID != "" {
			return LoadChatCmd(m.store, m.chat.root.ID)
		}
	case PaneFeed:
		return LoadFeedCmd(m.store, 50)
	case PaneSandbox:
		if m.sandboxPath != "" {
			return LoadSandboxCmd(m.sandboxPath)
		}
	}
	return nil
}

// Update is the main message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.engine.SetWidth(msg.Width - 4)
		m.md.SetWidth(msg.Width - 8)
		m.browser.setSize(msg.Width, msg.Height)
		return m, nil

	case ReadyTimeoutMsg:
		if !m.ready {
			m.ready = true
			m.width = 80
			m.height = 24
			m.browser.setSize(80, 24)
		}
		return m, nil

	case DBChangedMsg:
		cmds := []tea.Cmd{m.refreshPane()}
		if m.watch != nil {
			cmds = append(cmds, WatchFileCmd(m.watch))
		}
		return m, tea.Batch(cmds...)

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
			m.statusIsError = false
		}
		return m, nil

	case AppsLoadedMsg:
		if msg.Err != nil {
			return m, m.setStatus("loading apps: "+msg.Err.Error(), true)
		}
		m.apps = msg.Apps
		if m.appCursor >= len(m.apps) {
			m.appCursor = 0
		}
		if !m.booted {
			m.booted = true
			// Jump straight to the configured default pane on startup.
			if p := m.cfg.UI.DefaultPane; p != "" && p != "launcher" {
				for i, app := range m.apps {
					if app.ID == p {
						m.appCursor = i
						return m, m.openApp(app)
					}
				}
			}
		}
		return m, nil

	case MountedMsg:
		if msg.Err != nil {
			return m, m.setStatus("opening "+msg.App.Title+": "+msg.Err.Error(), true)
		}
		return m.mountPane(msg)

	case ChildrenLoadedMsg:
		return m.updateBrowserData(msg)

	case PreviewLoadedMsg:
		if msg.Err == nil && msg.RootID == m.browser.selectedID() {
			m.browser.preview = msg.View
		}
		return m, nil

	case ResourceSavedMsg:
		if msg.Err != nil {
			return m, m.setStatus("saving: "+msg.Err.Error(), true)
		}
		verb := "updated"
		if msg.Created {
			verb = "created"
		}
		return m, tea.Batch(
			m.setStatus(verb+" "+msg.Resource.Title, false),
			m.refreshPane(),
		)

	case ResourceDeletedMsg:
		if msg.Err != nil {
			return m, m.setStatus("deleting: "+msg.Err.Error(), true)
		}
		return m, tea.Batch(m.setStatus("deleted", false), m.refreshPane())

	case HouseholdLoadedMsg:
		return m.updateHouseholdData(msg)

	case ItemToggledMsg:
		if msg.Err != nil {
			return m, m.setStatus("toggling: "+msg.Err.Error(), true)
		}
		return m, LoadHouseholdCmd(m.store)

	case HealthLoadedMsg:
		return m.updateHealthData(msg)

	case FinanceLoadedMsg:
		return m.updateFinanceData(msg)

	case ChatLoadedMsg:
		return m.updateChatData(msg)

	case FeedLoadedMsg:
		if msg.Err != nil {
			return m, m.setStatus("loading feed: "+msg.Err.Error(), true)
		}
		m.feed.resources = msg.Resources
		if m.feed.cursor >= len(m.feed.resources) {
			m.feed.cursor = 0
		}
		return m, nil

	case SandboxLoadedMsg:
		return m.updateSandboxData(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus("export: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("chart written to "+msg.Path, false)

	case CopiedMsg:
		if msg.Err != nil {
			return m, m.setStatus("clipboard: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("copied "+msg.ID, false)

	case ConfigSavedMsg:
		if msg.Err != nil {
			return m, m.setStatus("saving config: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("settings saved", false)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

// mountPane finishes an app open once its context root is resolved.
func (m Model) mountPane(msg MountedMsg) (tea.Model, tea.Cmd) {
	target := PaneBrowser
	if msg.App.System {
		target = paneFor(msg.App.Pane)
	}
	switch target {
	case PaneHealth:
		m.pane = PaneHealth
		m.health.root = msg.Root
		return m, LoadHealthCmd(m.store, msg.Root.ID)
	case PaneFinance:
		m.pane = PaneFinance
		m.finance.root = msg.Root
		return m, LoadFinanceCmd(m.store, msg.Root.ID)
	case PaneChat:
		m.pane = PaneChat
		m.chat.root = msg.Root
		m.chat.input.Focus()
		return m, LoadChatCmd(m.store, msg.Root.ID)
	default:
		m.pane = PaneBrowser
		m.browser.mount(msg.App, msg.Root)
		m.browser.setSize(m.width, m.height)
		return m, m.browser.reloadCmd(m.store)
	}
}

// updateKeys dispatches key input to the active pane.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.pane {
	case PaneLauncher:
		return m.updateLauncherKeys(msg)
	case PaneBrowser:
		return m.updateBrowserKeys(msg)
	case PaneHousehold:
		return m.updateHouseholdKeys(msg)
	case PaneHealth:
		return m.updateHealthKeys(msg)
	case PaneFinance:
		return m.updateFinanceKeys(msg)
	case PaneChat:
		return m.updateChatKeys(msg)
	case PaneFeed:
		return m.updateFeedKeys(msg)
	case PaneSettings:
		return m.updateSettingsKeys(msg)
	case PaneSandbox:
		return m.updateSandboxKeys(msg)
	}
	return m, nil
}

// leaveToLauncher returns to the app grid and refreshes its counts.
func (m *Model) leaveToLauncher() tea.Cmd {
	m.pane = PaneLauncher
	return LoadAppsCmd(m.store, m.cfg)
}

// View renders the active pane plus the shared status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing...\n"
	}

	var body string
	switch m.pane {
	case PaneLauncher:
		body = m.viewLauncher()
	case PaneBrowser:
		body = m.viewBrowser()
	case PaneHousehold:
		body = m.viewHousehold()
	case PaneHealth:
		body = m.viewHealth()
	case PaneFinance:
		body = m.viewFinance()
	case PaneChat:
		body = m.viewChat()
	case PaneFeed:
		body = m.viewFeed()
	case PaneSettings:
		body = m.viewSettings()
	case PaneSandbox:
		body = m.viewSandbox()
	}

	return body + "\n" + m.viewStatusBar()
}

// viewStatusBar renders the bottom line: transient status or key hints.
func (m Model) viewStatusBar() string {
	if m.statusText != "" {
		if m.statusIsError {
			return m.theme.ErrorText.Render("✗ " + m.statusText)
		}
		return m.theme.StatusBar.Render("✓ " + m.statusText)
	}
	return m.theme.StatusBar.Render(truncateTo(m.paneHints(), max(m.width-1, 10)))
}

func (m Model) paneHints() string {
	switch m.pane {
	case PaneLauncher:
		return "↑↓←→ move · enter open · q quit"
	case PaneBrowser:
		return "enter open · bksp up · n new · e edit · d delete · m menu · / search · y copy id · esc launcher"
	case PaneHousehold:
		return "↑↓ move · space toggle · a add · esc launcher"
	case PaneHealth:
		return "↑↓ metric · x export chart · esc launcher"
	case PaneChat:
		return "enter send · esc launcher"
	case PaneSettings:
		return "c compact rows · d default pane · t theme · s save · esc launcher"
	case PaneSandbox:
		return "r reload · esc launcher"
	default:
		return "↑↓ move · esc launcher"
	}
}

// chatAuthor is the display name attached to sent messages.
func chatAuthor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "me"
}
