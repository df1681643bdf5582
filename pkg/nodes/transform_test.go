package nodes

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func strPtr(s string) *string { return &s }

func res(id, parent string, typ model.ResourceType, title string) model.Resource {
	r := model.Resource{
		ID:     id,
		Type:   typ,
		Title:  title,
		Status: model.StatusActive,
	}
	if parent != "" {
		r.ParentID = strPtr(parent)
	}
	return r
}

func TestBuildTreeBasic(t *testing.T) {
	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		res("b", "root", model.ResourceTask, "Buy milk"),
		res("a", "root", model.ResourceTask, "Answer mail"),
		res("sub", "root", model.ResourceFolder, "Projects"),
		res("deep", "sub", model.ResourceNote, "Plan"),
	}

	root := BuildTree(resources, "root")
	if root == nil {
		t.Fatal("expected tree")
	}
	if root.Count() != 5 {
		t.Errorf("expected 5 nodes, got %d", root.Count())
	}
	// Siblings ordered by title: "Answer mail" < "Buy milk" < "Projects".
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(root.Children))
	}
	titles := []string{root.Children[0].Title, root.Children[1].Title, root.Children[2].Title}
	want := []string{"Answer mail", "Buy milk", "Projects"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("child %d: got %q want %q", i, titles[i], want[i])
		}
	}
	if root.Children[2].Children[0].Title != "Plan" {
		t.Error("nested child missing")
	}
}

func TestBuildTreeMissingRoot(t *testing.T) {
	resources := []model.Resource{res("a", "", model.ResourceFolder, "A")}
	if got := BuildTree(resources, "nope"); got != nil {
		t.Errorf("expected nil for missing root, got %+v", got)
	}
	if got := BuildTree(nil, "anything"); got != nil {
		t.Error("expected nil for empty input")
	}
	if got := BuildTree(resources, ""); got != nil {
		t.Error("expected nil for empty root id")
	}
}

func TestBuildTreeExcludesDeleted(t *testing.T) {
	now := time.Now()
	deleted := res("gone", "root", model.ResourceTask, "Old task")
	deleted.DeletedAt = &now
	child := res("child", "gone", model.ResourceTask, "Orphaned by delete")

	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		res("keep", "root", model.ResourceTask, "Keep"),
		deleted,
		child,
	}

	root := BuildTree(resources, "root")
	if root == nil {
		t.Fatal("expected tree")
	}
	if root.Find("gone") != nil {
		t.Error("soft-deleted resource in tree")
	}
	if root.Find("child") != nil {
		t.Error("descendant of deleted resource should be unreachable")
	}
	if root.Find("keep") == nil {
		t.Error("live sibling missing")
	}
}

func TestBuildTreeDeletedRoot(t *testing.T) {
	now := time.Now()
	root := res("root", "", model.ResourceFolder, "Home")
	root.DeletedAt = &now
	if got := BuildTree([]model.Resource{root}, "root"); got != nil {
		t.Error("deleted root should yield nil")
	}
}

func TestBuildTreeUnreachableDropped(t *testing.T) {
	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		res("in", "root", model.ResourceTask, "In"),
		res("island", "elsewhere", model.ResourceTask, "Island"),
		res("free", "", model.ResourceTask, "Free floater"),
	}
	root := BuildTree(resources, "root")
	if root.Count() != 2 {
		t.Errorf("expected only reachable nodes, got %d", root.Count())
	}
}

func TestBuildTreeParentCycle(t *testing.T) {
	// a and b point at each other; both are unreachable from root and
	// must not hang the build.
	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		res("a", "b", model.ResourceTask, "A"),
		res("b", "a", model.ResourceTask, "B"),
	}
	root := BuildTree(resources, "root")
	if root == nil || root.Count() != 1 {
		t.Fatalf("cycle members should be dropped, tree: %+v", root)
	}
}

func TestBuildTreeVariantInference(t *testing.T) {
	explicit := res("n1", "root", model.ResourceTask, "Styled")
	explicit.MetaData = model.MetaData{"variant": "custom-thing"}

	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		explicit,
		res("n2", "root", model.ResourceTask, "Plain"),
		res("n3", "root", model.ResourceRecipe, "Soup"),
	}
	root := BuildTree(resources, "root")

	if got := root.Find("n1").Variant; got != "custom-thing" {
		t.Errorf("explicit variant lost: %q", got)
	}
	if got := root.Find("n2").Variant; got != VariantTaskRow {
		t.Errorf("task default variant: %q", got)
	}
	if got := root.Find("n3").Variant; got != VariantNoteCard {
		t.Errorf("recipe default variant: %q", got)
	}
	if got := root.Find("n2").Type; got != model.NodeItem {
		t.Errorf("task node type: %q", got)
	}
}

func TestBuildTreeStatusInMetadata(t *testing.T) {
	done := res("t1", "root", model.ResourceTask, "Done task")
	done.Status = model.StatusDone
	resources := []model.Resource{
		res("root", "", model.ResourceFolder, "Home"),
		done,
	}
	root := BuildTree(resources, "root")
	if got := root.Find("t1").Metadata.String("status"); got != "done" {
		t.Errorf("status not projected into metadata: %q", got)
	}
}

// TestBuildTreeProperties drives the transform with random forests and
// checks the reachability and ordering invariants hold for any input.
func TestBuildTreeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(t, "n")

		resources := make([]model.Resource, 0, n)
		resources = append(resources, res("r0", "", model.ResourceFolder, "root"))
		for i := 1; i < n; i++ {
			id := fmt.Sprintf("r%d", i)
			// Parent is any earlier id, or occasionally a bogus one.
			var parent string
			if rapid.Float64Range(0, 1).Draw(t, "orphan") < 0.1 {
				parent = "missing-" + id
			} else {
				parent = fmt.Sprintf("r%d", rapid.IntRange(0, i-1).Draw(t, "parent"))
			}
			title := rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "title")
			r := res(id, parent, model.ResourceTask, title)
			if rapid.Float64Range(0, 1).Draw(t, "del") < 0.15 {
				now := time.Now()
				r.DeletedAt = &now
			}
			resources = append(resources, r)
		}

		root := BuildTree(resources, "r0")
		if root == nil {
			t.Fatal("root present but tree nil")
		}

		// Every node in the tree maps to a live input resource, at most once.
		live := make(map[string]model.Resource)
		for _, r := range resources {
			if !r.Deleted() {
				live[r.ID] = r
			}
		}
		seen := make(map[string]bool)
		root.Walk(func(node *model.Node) bool {
			if seen[node.ID] {
				t.Fatalf("node %s appears twice", node.ID)
			}
			seen[node.ID] = true
			if _, ok := live[node.ID]; !ok {
				t.Fatalf("node %s not a live resource", node.ID)
			}
			return true
		})

		// Reachability: a live resource is in the tree iff its parent
		// chain reaches r0 through live resources.
		for id, r := range live {
			reachable := false
			cur := r
			for hops := 0; hops < len(resources)+1; hops++ {
				if cur.ID == "r0" {
					reachable = true
					break
				}
				if cur.ParentID == nil {
					break
				}
				next, ok := live[*cur.ParentID]
				if !ok {
					break
				}
				cur = next
			}
			if reachable != seen[id] {
				t.Fatalf("resource %s: reachable=%v in-tree=%v", id, reachable, seen[id])
			}
		}

		// Sibling ordering by (title, id).
		root.Walk(func(node *model.Node) bool {
			for i := 1; i < len(node.Children); i++ {
				a, b := node.Children[i-1], node.Children[i]
				if a.Title > b.Title || (a.Title == b.Title && a.ID >= b.ID) {
					t.Fatalf("siblings out of order under %s: %q/%s before %q/%s",
						node.ID, a.Title, a.ID, b.Title, b.ID)
				}
			}
			return true
		})
	})
}
