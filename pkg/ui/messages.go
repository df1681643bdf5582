package ui

import (
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lifeos/internal/store"
	"github.com/vanderheijden86/lifeos/pkg/config"
	"github.com/vanderheijden86/lifeos/pkg/debug"
	"github.com/vanderheijden86/lifeos/pkg/export"
	"github.com/vanderheijden86/lifeos/pkg/health"
	"github.com/vanderheijden86/lifeos/pkg/launcher"
	"github.com/vanderheijden86/lifeos/pkg/model"
	"github.com/vanderheijden86/lifeos/pkg/nodes"
	"github.com/vanderheijden86/lifeos/pkg/watcher"
)

// DBChangedMsg is sent when the database file changes on disk.
type DBChangedMsg struct{}

// ReadyTimeoutMsg is sent after a short delay so the UI becomes ready even
// when the terminal never reports its size.
type ReadyTimeoutMsg struct{}

// statusExpireMsg clears a transient status-line message.
type statusExpireMsg struct{ seq int }

// AppsLoadedMsg carries the launcher grid contents.
type AppsLoadedMsg struct {
	Apps []launcher.App
	Err  error
}

// ChildrenLoadedMsg carries one folder's live children for the browser list.
type ChildrenLoadedMsg struct {
	ParentID  string
	Resources []model.Resource
	Counts    map[string]int
	Err       error
}

// PreviewLoadedMsg carries the rendered subtree of the selected resource.
type PreviewLoadedMsg struct {
	RootID string
	View   string
	Err    error
}

// ResourceSavedMsg reports the outcome of a create or update.
type ResourceSavedMsg struct {
	Resource model.Resource
	Created  bool
	Err      error
}

// ResourceDeletedMsg reports the outcome of a soft delete.
type ResourceDeletedMsg struct {
	ID  string
	Err error
}

// HouseholdLoadedMsg carries the household pane contents.
type HouseholdLoadedMsg struct {
	Households []store.Household
	Profiles   []store.Profile
	Categories []store.Category
	Lists      []store.List
	Items      []store.Item
	Err        error
}

// ItemToggledMsg reports a checklist item flip.
type ItemToggledMsg struct {
	ID   string
	Done bool
	Err  error
}

// HealthLoadedMsg carries extracted samples and their summaries.
type HealthLoadedMsg struct {
	Samples   []health.Sample
	Summaries []health.Summary
	Err       error
}

// FinanceLoadedMsg carries finance events and the running balance.
type FinanceLoadedMsg struct {
	Resources []model.Resource
	Balance   float64
	Err       error
}

// ChatLoadedMsg carries the chat transcript.
type ChatLoadedMsg struct {
	Messages []model.Resource
	Err      error
}

// FeedLoadedMsg carries the recent-activity feed.
type FeedLoadedMsg struct {
	Resources []model.Resource
	Err       error
}

// SandboxLoadedMsg carries a decoded sandbox document.
type SandboxLoadedMsg struct {
	Tree *model.Node
	Err  error
}

// ExportDoneMsg reports a chart export outcome.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// CopiedMsg reports a clipboard copy outcome.
type CopiedMsg struct {
	ID  string
	Err error
}

// ConfigSavedMsg reports a settings write.
type ConfigSavedMsg struct{ Err error }

// ReadyTimeoutCmd sends ReadyTimeoutMsg after 100ms. Some terminals (tmux,
// SSH) are slow to report their size; without this the UI can hang on the
// initializing screen.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// WatchFileCmd waits for the next database change notification.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		<-w.Changed()
		return DBChangedMsg{}
	}
}

func statusExpireCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

// LoadAppsCmd discovers launcher apps from the store.
func LoadAppsCmd(s *store.Store, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		apps, err := launcher.Discover(s, cfg)
		return AppsLoadedMsg{Apps: apps, Err: err}
	}
}

// LoadChildrenCmd loads one folder's children plus per-container counts.
func LoadChildrenCmd(s *store.Store, parentID, query string) tea.Cmd {
	return func() tea.Msg {
		var (
			resources []model.Resource
			err       error
		)
		if query != "" {
			resources, err = s.SearchResources(parentID, query)
		} else {
			resources, err = s.ListChildren(parentID)
		}
		if err != nil {
			return ChildrenLoadedMsg{ParentID: parentID, Err: err}
		}
		counts := make(map[string]int, len(resources))
		for _, r := range resources {
			if !r.Type.IsContainer() {
				continue
			}
			n, err := s.CountChildren(r.ID)
			if err != nil {
				continue
			}
			counts[r.ID] = n
		}
		return ChildrenLoadedMsg{ParentID: parentID, Resources: resources, Counts: counts}
	}
}

// LoadPreviewCmd builds and renders the subtree below the given resource.
func LoadPreviewCmd(s *store.Store, engine *nodes.Engine, rootID string) tea.Cmd {
	return func() tea.Msg {
		subtree, err := s.ListSubtree(rootID)
		if err != nil {
			return PreviewLoadedMsg{RootID: rootID, Err: err}
		}
		start := time.Now()
		tree := nodes.BuildTree(subtree, rootID)
		if tree == nil {
			return PreviewLoadedMsg{RootID: rootID, View: ""}
		}
		view := engine.Render(tree)
		debug.LogTiming("preview render", time.Since(start))
		return PreviewLoadedMsg{RootID: rootID, View: view}
	}
}

// CreateResourceCmd creates a resource under the given parent.
func CreateResourceCmd(s *store.Store, parentID string, typ model.ResourceType, title string, meta model.MetaData) tea.Cmd {
	return func() tea.Msg {
		r, err := s.CreateResource(parentID, typ, title, meta)
		return ResourceSavedMsg{Resource: r, Created: true, Err: err}
	}
}

// UpdateResourceCmd persists edits to an existing resource.
func UpdateResourceCmd(s *store.Store, r model.Resource) tea.Cmd {
	return func() tea.Msg {
		err := s.UpdateResource(r)
		return ResourceSavedMsg{Resource: r, Err: err}
	}
}

// DeleteResourceCmd soft-deletes a resource and its subtree.
func DeleteResourceCmd(s *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		return ResourceDeletedMsg{ID: id, Err: s.DeleteResource(id)}
	}
}

// ToggleTaskCmd flips a task between active and done.
func ToggleTaskCmd(s *store.Store, r model.Resource) tea.Cmd {
	if r.Status == model.StatusDone {
		r.Status = model.StatusActive
	} else {
		r.Status = model.StatusDone
	}
	return UpdateResourceCmd(s, r)
}

// LoadHouseholdCmd loads profiles and the first household's checklist data.
func LoadHouseholdCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		households, err := s.Households()
		if err != nil {
			return HouseholdLoadedMsg{Err: err}
		}
		msg := HouseholdLoadedMsg{Households: households}
		if len(households) == 0 {
			return msg
		}
		hh := households[0]
		if msg.Profiles, err = s.Profiles(hh.ID); err != nil {
			return HouseholdLoadedMsg{Err: err}
		}
		if msg.Categories, err = s.Categories(hh.ID); err != nil {
			return HouseholdLoadedMsg{Err: err}
		}
		for _, cat := range msg.Categories {
			lists, err := s.Lists(cat.ID)
			if err != nil {
				return HouseholdLoadedMsg{Err: err}
			}
			msg.Lists = append(msg.Lists, lists...)
		}
		for _, l := range msg.Lists {
			items, err := s.Items(l.ID)
			if err != nil {
				return HouseholdLoadedMsg{Err: err}
			}
			msg.Items = append(msg.Items, items...)
		}
		return msg
	}
}

// ToggleItemCmd flips a checklist item.
func ToggleItemCmd(s *store.Store, id string) tea.Cmd {
	return func() tea.Msg {
		done, err := s.ToggleItem(id)
		return ItemToggledMsg{ID: id, Done: done, Err: err}
	}
}

// AddItemCmd appends a checklist item, then reloads the pane.
func AddItemCmd(s *store.Store, listID, label string) tea.Cmd {
	return func() tea.Msg {
		if _, err := s.CreateItem(listID, label); err != nil {
			return HouseholdLoadedMsg{Err: err}
		}
		return LoadHouseholdCmd(s)()
	}
}

// LoadHealthCmd extracts health samples below the given context root.
func LoadHealthCmd(s *store.Store, rootID string) tea.Cmd {
	return func() tea.Msg {
		subtree, err := s.ListSubtree(rootID)
		if err != nil {
			return HealthLoadedMsg{Err: err}
		}
		samples := health.SamplesFrom(subtree)
		return HealthLoadedMsg{Samples: samples, Summaries: health.Summarize(samples)}
	}
}

// LoadFinanceCmd loads finance events and sums their amounts.
func LoadFinanceCmd(s *store.Store, rootID string) tea.Cmd {
	return func() tea.Msg {
		subtree, err := s.ListSubtree(rootID)
		if err != nil {
			return FinanceLoadedMsg{Err: err}
		}
		var events []model.Resource
		var balance float64
		for _, r := range subtree {
			if r.ID == rootID || r.Type != model.ResourceEvent {
				continue
			}
			events = append(events, r)
			balance += eventAmount(r)
		}
		return FinanceLoadedMsg{Resources: events, Balance: balance}
	}
}

// LoadChatCmd loads the chat transcript under the given root.
func LoadChatCmd(s *store.Store, rootID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := s.ListChildren(rootID)
		return ChatLoadedMsg{Messages: msgs, Err: err}
	}
}

// SendChatCmd stores a chat message, then reloads the transcript.
func SendChatCmd(s *store.Store, rootID, from, text string) tea.Cmd {
	return func() tea.Msg {
		meta := model.MetaData{"variant": "chat-bubble", "from": from}
		if _, err := s.CreateResource(rootID, model.ResourceNote, text, meta); err != nil {
			return ChatLoadedMsg{Err: err}
		}
		return LoadChatCmd(s, rootID)()
	}
}

// LoadFeedCmd loads the most recently touched resources.
func LoadFeedCmd(s *store.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		resources, err := s.RecentResources(limit)
		return FeedLoadedMsg{Resources: resources, Err: err}
	}
}

// LoadSandboxCmd reads and decodes a sandbox document from disk.
func LoadSandboxCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return SandboxLoadedMsg{Err: err}
		}
		tree, err := nodes.DecodeDocument(data)
		return SandboxLoadedMsg{Tree: tree, Err: err}
	}
}

// ExportChartCmd writes a line chart for the given metric.
func ExportChartCmd(samples []health.Sample, metric, path string) tea.Cmd {
	return func() tea.Msg {
		err := export.Run(samples, export.WizardConfig{
			Metric:     metric,
			Title:      metric,
			OutputPath: path,
		})
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// CopyIDCmd puts a resource id on the system clipboard.
func CopyIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{ID: id, Err: clipboard.WriteAll(id)}
	}
}

// SaveConfigCmd persists the configuration file.
func SaveConfigCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return ConfigSavedMsg{Err: config.Save(cfg)}
	}
}
