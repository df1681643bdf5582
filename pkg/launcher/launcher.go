// Package launcher builds the app grid: the static system apps merged
// with context-root resources discovered in the store, ordered by the
// user's saved preference.
package launcher

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/lifeos/pkg/config"
	"github.com/vanderheijden86/lifeos/pkg/model"
)

// App is one launchable entry. System apps route to a built-in pane;
// discovered apps open the resources browser mounted at their context
// root.
type App struct {
	ID     string
	Title  string
	Icon   string
	Pane   string // built-in pane name, "" for discovered apps
	RootID string // context root resource id, "" for pure system panes
	Count  int    // live child count under the root, when known
	System bool
}

// Source is the slice of the store the launcher needs.
type Source interface {
	ContextRoots() ([]model.Resource, error)
	CountChildren(parentID string) (int, error)
}

// SystemApps is the static table of built-in apps, in default order.
// Discovered context roots whose slug collides with one of these ids are
// folded into the system entry rather than listed twice.
var SystemApps = []App{
	{ID: "tasks", Title: "Tasks", Icon: "▤", Pane: "tasks", System: true},
	{ID: "household", Title: "Household", Icon: "⌂", Pane: "household", System: true},
	{ID: "health", Title: "Health", Icon: "♥", Pane: "health", System: true},
	{ID: "finance", Title: "Finance", Icon: "$", Pane: "finance", System: true},
	{ID: "chat", Title: "Chat", Icon: "✉", Pane: "chat", System: true},
	{ID: "feed", Title: "Feed", Icon: "☲", Pane: "feed", System: true},
	{ID: "settings", Title: "Settings", Icon: "⚙", Pane: "settings", System: true},
	{ID: "sandbox", Title: "Sandbox", Icon: "░", Pane: "sandbox", System: true},
}

// Discover merges the static apps with the store's context roots and
// applies the configured order and hidden set. Child counts for apps with
// a context root are fetched concurrently; a failed count leaves zero
// rather than failing discovery.
func Discover(src Source, cfg config.Config) ([]App, error) {
	roots, err := src.ContextRoots()
	if err != nil {
		return nil, fmt.Errorf("discovering context roots: %w", err)
	}

	apps := make([]App, len(SystemApps))
	copy(apps, SystemApps)
	index := make(map[string]int, len(apps))
	for i, a := range apps {
		index[a.ID] = i
	}

	for _, r := range roots {
		id := r.MetaData.String("slug")
		if id == "" {
			id = r.ID
		}
		if i, ok := index[id]; ok {
			// A discovered root backing a system app: attach the root
			// so the pane knows its mount point.
			apps[i].RootID = r.ID
			continue
		}
		icon := r.MetaData.String("icon")
		if icon == "" {
			icon = "◇"
		}
		index[id] = len(apps)
		apps = append(apps, App{ID: id, Title: r.Title, Icon: icon, RootID: r.ID})
	}

	var g errgroup.Group
	for i := range apps {
		if apps[i].RootID == "" {
			continue
		}
		g.Go(func() error {
			count, err := src.CountChildren(apps[i].RootID)
			if err != nil {
				return nil // count stays zero
			}
			apps[i].Count = count
			return nil
		})
	}
	// The count goroutines swallow their errors (a failed count stays
	// zero), so Wait can never report one.
	_ = g.Wait()

	visible := apps[:0]
	for _, a := range apps {
		if !cfg.AppHidden(a.ID) {
			visible = append(visible, a)
		}
	}
	orderApps(visible, cfg.Launcher.Order)
	return visible, nil
}

// orderApps sorts apps by the saved order list; apps not named keep their
// relative rank after the ordered ones, system table order first, then
// discovered apps by title.
func orderApps(apps []App, order []string) {
	rank := make(map[string]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	systemRank := make(map[string]int, len(SystemApps))
	for i, a := range SystemApps {
		systemRank[a.ID] = i
	}

	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		ra, aOK := rank[a.ID]
		rb, bOK := rank[b.ID]
		switch {
		case aOK && bOK:
			return ra < rb
		case aOK:
			return true
		case bOK:
			return false
		}
		sa, aSys := systemRank[a.ID]
		sb, bSys := systemRank[b.ID]
		switch {
		case aSys && bSys:
			return sa < sb
		case aSys:
			return true
		case bSys:
			return false
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}
