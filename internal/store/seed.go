package store

import (
	"fmt"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

// EnsureContextRoot finds the context root with the given slug, creating a
// top-level folder flagged app_root when absent. Panes call this on first
// use so every feature has a mount point to hang its hierarchy on.
func (s *Store) EnsureContextRoot(slug, title string) (model.Resource, error) {
	roots, err := s.ContextRoots()
	if err != nil {
		return model.Resource{}, err
	}
	for _, r := range roots {
		if r.MetaData.String("slug") == slug {
			return r, nil
		}
	}
	return s.CreateResource("", model.ResourceFolder, title, model.MetaData{
		"app_root": true,
		"slug":     slug,
	})
}

// SeedDemo populates an empty database with a small demo household so the
// panes have something to show on first run. A database that already has
// resources is left untouched.
func (s *Store) SeedDemo() error {
	existing, err := s.ListResources()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hh, err := s.CreateHousehold("Home")
	if err != nil {
		return fmt.Errorf("seeding household: %w", err)
	}
	for _, p := range []struct{ name, avatar string }{
		{"Alex", "A"}, {"Sam", "S"},
	} {
		if _, err := s.CreateProfile(hh.ID, p.name, p.avatar); err != nil {
			return fmt.Errorf("seeding profile: %w", err)
		}
	}

	cat, err := s.CreateCategory(hh.ID, "Groceries")
	if err != nil {
		return err
	}
	list, err := s.CreateList(cat.ID, "Weekly shop")
	if err != nil {
		return err
	}
	for _, label := range []string{"Milk", "Bread", "Coffee"} {
		if _, err := s.CreateItem(list.ID, label); err != nil {
			return err
		}
	}

	tasks, err := s.EnsureContextRoot("tasks", "Tasks")
	if err != nil {
		return err
	}
	chores, err := s.CreateResource(tasks.ID, model.ResourceFolder, "Chores", nil)
	if err != nil {
		return err
	}
	for _, title := range []string{"Water plants", "Vacuum hallway"} {
		if _, err := s.CreateResource(chores.ID, model.ResourceTask, title, nil); err != nil {
			return err
		}
	}
	if _, err := s.CreateResource(tasks.ID, model.ResourceNote, "Welcome", model.MetaData{
		"body": "# Welcome to lifeos\n\nEverything here lives in one resource tree.",
	}); err != nil {
		return err
	}

	health, err := s.EnsureContextRoot("health", "Health")
	if err != nil {
		return err
	}
	for i, v := range []string{"7200", "8100", "6400"} {
		if _, err := s.CreateResource(health.ID, model.ResourceEvent, fmt.Sprintf("Steps day %d", i+1), model.MetaData{
			"metric": "steps",
			"value":  v,
		}); err != nil {
			return err
		}
	}

	finance, err := s.EnsureContextRoot("finance", "Finance")
	if err != nil {
		return err
	}
	for _, tx := range []struct {
		title  string
		amount string
	}{
		{"Salary", "2500.00"}, {"Rent", "-1200.00"}, {"Groceries", "-86.40"},
	} {
		if _, err := s.CreateResource(finance.ID, model.ResourceEvent, tx.title, model.MetaData{
			"amount": tx.amount,
		}); err != nil {
			return err
		}
	}

	if _, err := s.EnsureContextRoot("chat", "Chat"); err != nil {
		return err
	}
	return nil
}
