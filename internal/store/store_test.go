package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetResource(t *testing.T) {
	s := testStore(t)

	root, err := s.CreateResource("", model.ResourceFolder, "Home", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if root.ID == "" || root.Path != "/"+root.ID {
		t.Errorf("bad id/path: %q %q", root.ID, root.Path)
	}
	if root.Status != model.StatusActive {
		t.Errorf("expected active status, got %q", root.Status)
	}

	child, err := s.CreateResource(root.ID, model.ResourceTask, "Do it", model.MetaData{"badge": "urgent"})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if child.Path != root.Path+"/"+child.ID {
		t.Errorf("child path %q not under parent %q", child.Path, root.Path)
	}

	got, err := s.GetResource(child.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MetaData.String("badge") != "urgent" {
		t.Errorf("meta_data lost in round trip: %+v", got.MetaData)
	}
	if got.ParentID == nil || *got.ParentID != root.ID {
		t.Error("parent id lost")
	}
}

func TestConcurrentReadsShareSchema(t *testing.T) {
	s := testStore(t)

	root, err := s.CreateResource("", model.ResourceFolder, "Home", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, title := range []string{"a", "b", "c"} {
		if _, err := s.CreateResource(root.ID, model.ResourceTask, title, nil); err != nil {
			t.Fatalf("create child: %v", err)
		}
	}

	// Parallel readers must all see the same database, not fresh empty
	// ones handed out per pool connection.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.CountChildren(root.ID)
			if err != nil {
				errs <- err
				return
			}
			if n != 3 {
				errs <- fmt.Errorf("count = %d, want 3", n)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestCreateResourceValidation(t *testing.T) {
	s := testStore(t)

	if _, err := s.CreateResource("", model.ResourceTask, "   ", nil); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title: %v", err)
	}
	if _, err := s.CreateResource("", "gadget", "X", nil); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type: %v", err)
	}
	if _, err := s.CreateResource("missing", model.ResourceTask, "X", nil); !errors.Is(err, ErrBadParent) {
		t.Errorf("bad parent: %v", err)
	}
}

func TestListChildrenOrderedByTitle(t *testing.T) {
	s := testStore(t)
	root, _ := s.CreateResource("", model.ResourceFolder, "Home", nil)
	for _, title := range []string{"zeta", "alpha", "midway"} {
		if _, err := s.CreateResource(root.ID, model.ResourceTask, title, nil); err != nil {
			t.Fatal(err)
		}
	}

	children, err := s.ListChildren(root.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alpha", "midway", "zeta"}
	if len(children) != len(want) {
		t.Fatalf("got %d children", len(children))
	}
	for i := range want {
		if children[i].Title != want[i] {
			t.Errorf("child %d = %q, want %q", i, children[i].Title, want[i])
		}
	}
}

func TestDeleteResourceCascades(t *testing.T) {
	s := testStore(t)
	root, _ := s.CreateResource("", model.ResourceFolder, "Home", nil)
	sub, _ := s.CreateResource(root.ID, model.ResourceFolder, "Sub", nil)
	leaf, _ := s.CreateResource(sub.ID, model.ResourceTask, "Leaf", nil)
	sibling, _ := s.CreateResource(root.ID, model.ResourceTask, "Sibling", nil)

	if err := s.DeleteResource(sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.GetResource(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted resource still readable")
	}
	if _, err := s.GetResource(leaf.ID); !errors.Is(err, ErrNotFound) {
		t.Error("descendant not cascaded")
	}
	if _, err := s.GetResource(sibling.ID); err != nil {
		t.Errorf("sibling affected by delete: %v", err)
	}

	all, _ := s.ListResources()
	if len(all) != 2 {
		t.Errorf("expected 2 live resources, got %d", len(all))
	}
}

func TestUpdateResource(t *testing.T) {
	s := testStore(t)
	r, _ := s.CreateResource("", model.ResourceTask, "Before", nil)

	r.Title = "After"
	r.Status = model.StatusDone
	r.MetaData = model.MetaData{"variant": "custom"}
	if err := s.UpdateResource(r); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.GetResource(r.ID)
	if got.Title != "After" || got.Status != model.StatusDone {
		t.Errorf("update lost: %+v", got)
	}
	if got.MetaData.String("variant") != "custom" {
		t.Error("meta_data update lost")
	}

	missing := got
	missing.ID = "nope"
	if err := s.UpdateResource(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("updating missing resource: %v", err)
	}
}

func TestListSubtreeAndSearch(t *testing.T) {
	s := testStore(t)
	rootA, _ := s.CreateResource("", model.ResourceFolder, "A", nil)
	rootB, _ := s.CreateResource("", model.ResourceFolder, "B", nil)
	inA, _ := s.CreateResource(rootA.ID, model.ResourceTask, "Find me", nil)
	s.CreateResource(rootB.ID, model.ResourceTask, "Find me too", nil)

	subtree, err := s.ListSubtree(rootA.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(subtree) != 2 {
		t.Fatalf("subtree size %d, want 2", len(subtree))
	}

	hits, err := s.SearchResources(rootA.ID, "find")
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ID != inA.ID {
		t.Errorf("bounded search returned %d hits", len(hits))
	}

	global, _ := s.SearchResources("", "find")
	if len(global) != 2 {
		t.Errorf("global search returned %d hits", len(global))
	}
}

func TestContextRoots(t *testing.T) {
	s := testStore(t)
	s.CreateResource("", model.ResourceFolder, "Plain", nil)
	flagged, _ := s.CreateResource("", model.ResourceFolder, "Mount", model.MetaData{"app_root": true, "slug": "mount"})

	roots, err := s.ContextRoots()
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 1 || roots[0].ID != flagged.ID {
		t.Errorf("context roots: %+v", roots)
	}

	again, err := s.EnsureContextRoot("mount", "Mount")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != flagged.ID {
		t.Error("EnsureContextRoot created a duplicate")
	}

	created, err := s.EnsureContextRoot("fresh", "Fresh")
	if err != nil {
		t.Fatal(err)
	}
	if !created.IsAppRoot() {
		t.Error("new context root missing app_root flag")
	}
}

func TestLegacyTodoTables(t *testing.T) {
	s := testStore(t)
	hh, err := s.CreateHousehold("Home")
	if err != nil {
		t.Fatal(err)
	}
	cat, err := s.CreateCategory(hh.ID, "Groceries")
	if err != nil {
		t.Fatal(err)
	}
	list, err := s.CreateList(cat.ID, "Weekly")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.CreateItem(list.ID, "Milk")
	b, _ := s.CreateItem(list.ID, "Bread")
	if a.Position >= b.Position {
		t.Errorf("positions not increasing: %d %d", a.Position, b.Position)
	}

	done, err := s.ToggleItem(a.ID)
	if err != nil || !done {
		t.Fatalf("toggle: %v done=%v", err, done)
	}
	done, _ = s.ToggleItem(a.ID)
	if done {
		t.Error("second toggle should clear done")
	}

	if _, err := s.ToggleItem("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggling missing item: %v", err)
	}

	items, _ := s.Items(list.ID)
	if len(items) != 2 {
		t.Fatalf("items: %d", len(items))
	}
	if err := s.DeleteItem(b.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = s.Items(list.ID)
	if len(items) != 1 {
		t.Errorf("delete left %d items", len(items))
	}
}

func TestProfiles(t *testing.T) {
	s := testStore(t)
	hh, _ := s.CreateHousehold("Home")
	s.CreateProfile(hh.ID, "Zoe", "Z")
	s.CreateProfile(hh.ID, "Alex", "A")
	s.CreateProfile("", "Solo", "")

	members, err := s.Profiles(hh.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].DisplayName != "Alex" {
		t.Errorf("profiles: %+v", members)
	}
	all, _ := s.Profiles("")
	if len(all) != 3 {
		t.Errorf("all profiles: %d", len(all))
	}
}

func TestSeedDemoIdempotent(t *testing.T) {
	s := testStore(t)
	if err := s.SeedDemo(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, _ := s.ListResources()
	if len(first) == 0 {
		t.Fatal("seed created nothing")
	}
	if err := s.SeedDemo(); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, _ := s.ListResources()
	if len(second) != len(first) {
		t.Errorf("seed not idempotent: %d then %d", len(first), len(second))
	}

	roots, _ := s.ContextRoots()
	if len(roots) < 4 {
		t.Errorf("expected seeded context roots, got %d", len(roots))
	}
}

func TestLastModified(t *testing.T) {
	s := testStore(t)
	zero, err := s.LastModified()
	if err != nil {
		t.Fatal(err)
	}
	if !zero.IsZero() {
		t.Errorf("empty db last modified: %v", zero)
	}
	s.CreateResource("", model.ResourceTask, "X", nil)
	ts, err := s.LastModified()
	if err != nil || ts.IsZero() {
		t.Errorf("last modified after insert: %v %v", ts, err)
	}
}
