package ui

import (
	"github.com/vanderheijden86/lifeos/pkg/model"
)

// NavState tracks a pane's position inside its resource hierarchy. The
// context root bounds the navigable range: Up never ascends above it.
// State lives only as long as the pane; switching panes resets it.
type NavState struct {
	contextRoot model.Breadcrumb
	crumbs      []model.Breadcrumb // path below the context root, innermost last
	SearchQuery string
}

// NewNavState creates navigation state mounted at the given context root.
func NewNavState(root model.Resource) NavState {
	return NavState{
		contextRoot: model.Breadcrumb{ID: root.ID, Title: root.Title, Path: root.Path},
	}
}

// ContextRootID returns the bounding resource id.
func (n *NavState) ContextRootID() string {
	return n.contextRoot.ID
}

// CurrentID returns the id of the folder currently open: the innermost
// breadcrumb, or the context root at the top level.
func (n *NavState) CurrentID() string {
	if len(n.crumbs) == 0 {
		return n.contextRoot.ID
	}
	return n.crumbs[len(n.crumbs)-1].ID
}

// AtRoot reports whether the pane is at its context root.
func (n *NavState) AtRoot() bool {
	return len(n.crumbs) == 0
}

// Depth returns how many levels below the context root the pane is.
func (n *NavState) Depth() int {
	return len(n.crumbs)
}

// Enter descends into a child resource.
func (n *NavState) Enter(r model.Resource) {
	n.crumbs = append(n.crumbs, model.Breadcrumb{ID: r.ID, Title: r.Title, Path: r.Path})
	n.SearchQuery = ""
}

// Up ascends one level. At the context root it is a no-op and returns
// false; the pane interprets that as "leave the pane" instead.
func (n *NavState) Up() bool {
	if len(n.crumbs) == 0 {
		return false
	}
	n.crumbs = n.crumbs[:len(n.crumbs)-1]
	n.SearchQuery = ""
	return true
}

// Reset jumps back to the context root and clears search.
func (n *NavState) Reset() {
	n.crumbs = nil
	n.SearchQuery = ""
}

// Trail returns the full breadcrumb trail, context root first.
func (n *NavState) Trail() []model.Breadcrumb {
	trail := make([]model.Breadcrumb, 0, len(n.crumbs)+1)
	trail = append(trail, n.contextRoot)
	trail = append(trail, n.crumbs...)
	return trail
}
