package nodes

import (
	"log"
	"sort"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// NodeTypeFor maps a resource type to the structural node kind renderers
// dispatch on.
func NodeTypeFor(t model.ResourceType) model.NodeType {
	switch t {
	case model.ResourceFolder, model.ResourceProject:
		return model.NodeContainer
	case model.ResourceTask, model.ResourceEvent:
		return model.NodeItem
	default:
		return model.NodeCard
	}
}

// DefaultVariantFor returns the renderer variant used when a resource's
// metadata carries no explicit "variant" key.
func DefaultVariantFor(t model.ResourceType) string {
	switch t {
	case model.ResourceFolder, model.ResourceProject:
		return VariantFolder
	case model.ResourceTask:
		return VariantTaskRow
	case model.ResourceEvent:
		return VariantEventRow
	case model.ResourceNote, model.ResourceDocument, model.ResourceRecipe:
		return VariantNoteCard
	default:
		return VariantDebug
	}
}

// BuildTree converts a flat resource slice into the nested node tree rooted
// at rootID. Two passes: index every live resource by id, then attach each
// node to its parent. Only resources reachable from the root end up in the
// tree; soft-deleted resources and anything on a parent cycle are dropped.
// Siblings are ordered by title, ties broken by id.
//
// If rootID is absent from the input (or soft-deleted) a warning is logged
// and nil is returned; callers treat that as "nothing to render".
func BuildTree(resources []model.Resource, rootID string) *model.Node {
	if rootID == "" {
		return nil
	}

	// Pass 1: project every live resource to a childless node.
	byID := make(map[string]*model.Node, len(resources))
	parentOf := make(map[string]string, len(resources))
	for i := range resources {
		r := &resources[i]
		if r.Deleted() || r.ID == "" {
			continue
		}
		byID[r.ID] = projectResource(r)
		if r.ParentID != nil && *r.ParentID != "" && r.ID != rootID {
			parentOf[r.ID] = *r.ParentID
		}
	}

	root, ok := byID[rootID]
	if !ok {
		log.Printf("warning: tree root %q not present in resource set (%d resources)", rootID, len(resources))
		return nil
	}

	// Pass 2: attach children to parents. Orphans (parent missing) and
	// nodes whose parent chain never reaches the root simply stay
	// unattached and drop out of the result.
	for id, parentID := range parentOf {
		parent, ok := byID[parentID]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, byID[id])
	}

	sortSiblings(root, make(map[string]bool))
	return root
}

// projectResource builds the render node for one resource.
func projectResource(r *model.Resource) *model.Node {
	variant := r.Variant()
	if variant == "" {
		variant = DefaultVariantFor(r.Type)
	}
	metadata := r.MetaData
	if r.Status != "" {
		// Renderers read status out of the bag; copy so the store's
		// record is never aliased by render state.
		metadata = make(model.MetaData, len(r.MetaData)+1)
		for k, v := range r.MetaData {
			metadata[k] = v
		}
		metadata["status"] = string(r.Status)
	}
	return &model.Node{
		ID:       r.ID,
		Type:     NodeTypeFor(r.Type),
		Variant:  variant,
		Title:    r.Title,
		Metadata: metadata,
	}
}

// sortSiblings orders every child list by title (then id) and guards
// against parent-pointer cycles: a child already on the path from the root
// is detached rather than recursed into.
func sortSiblings(n *model.Node, onPath map[string]bool) {
	onPath[n.ID] = true
	kept := n.Children[:0]
	for _, c := range n.Children {
		if onPath[c.ID] {
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	for _, c := range n.Children {
		sortSiblings(c, onPath)
	}
	delete(onPath, n.ID)
}
