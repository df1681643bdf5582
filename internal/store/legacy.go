package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// The legacy to-do feature predates the generic resource hierarchy:
// categories hold lists, lists hold checkable items. The household pane
// still reads and writes this shape directly.

// Category is a group of to-do lists.
type Category struct {
	ID          string
	HouseholdID string
	Name        string
	Position    int
}

// List is an ordered to-do list within a category.
type List struct {
	ID         string
	CategoryID string
	Name       string
	Position   int
}

// Item is one checkable entry in a list.
type Item struct {
	ID       string
	ListID   string
	Label    string
	Done     bool
	Position int
}

// CreateCategory appends a category for a household.
func (s *Store) CreateCategory(householdID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyTitle
	}
	c := Category{ID: uuid.NewString(), HouseholdID: householdID, Name: name}
	err := s.db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM categories WHERE household_id IS ?`, nullable(householdID)).Scan(&c.Position)
	if err != nil {
		c.Position = 0
	}
	_, err = s.db.Exec(`INSERT INTO categories (id, household_id, name, position) VALUES (?, ?, ?, ?)`,
		c.ID, nullable(householdID), c.Name, c.Position)
	if err != nil {
		return Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

// Categories returns a household's categories in position order.
func (s *Store) Categories(householdID string) ([]Category, error) {
	rows, err := s.db.Query(`SELECT id, COALESCE(household_id, ''), name, position FROM categories WHERE household_id IS ? ORDER BY position, name`, nullable(householdID))
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.HouseholdID, &c.Name, &c.Position); err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateList appends a list to a category.
func (s *Store) CreateList(categoryID, name string) (List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, ErrEmptyTitle
	}
	l := List{ID: uuid.NewString(), CategoryID: categoryID, Name: name}
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM lists WHERE category_id = ?`, categoryID).Scan(&l.Position); err != nil {
		l.Position = 0
	}
	_, err := s.db.Exec(`INSERT INTO lists (id, category_id, name, position) VALUES (?, ?, ?, ?)`,
		l.ID, l.CategoryID, l.Name, l.Position)
	if err != nil {
		return List{}, fmt.Errorf("inserting list: %w", err)
	}
	return l, nil
}

// Lists returns a category's lists in position order.
func (s *Store) Lists(categoryID string) ([]List, error) {
	rows, err := s.db.Query(`SELECT id, category_id, name, position FROM lists WHERE category_id = ? ORDER BY position, name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	defer rows.Close()

	var out []List
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.CategoryID, &l.Name, &l.Position); err != nil {
			continue
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateItem appends an item to a list.
func (s *Store) CreateItem(listID, label string) (Item, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Item{}, ErrEmptyTitle
	}
	it := Item{ID: uuid.NewString(), ListID: listID, Label: label}
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM items WHERE list_id = ?`, listID).Scan(&it.Position); err != nil {
		it.Position = 0
	}
	_, err := s.db.Exec(`INSERT INTO items (id, list_id, label, done, position) VALUES (?, ?, ?, 0, ?)`,
		it.ID, it.ListID, it.Label, it.Position)
	if err != nil {
		return Item{}, fmt.Errorf("inserting item: %w", err)
	}
	return it, nil
}

// Items returns a list's items in position order.
func (s *Store) Items(listID string) ([]Item, error) {
	rows, err := s.db.Query(`SELECT id, list_id, label, done, position FROM items WHERE list_id = ? ORDER BY position`, listID)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		var done int
		if err := rows.Scan(&it.ID, &it.ListID, &it.Label, &done, &it.Position); err != nil {
			continue
		}
		it.Done = done != 0
		out = append(out, it)
	}
	return out, rows.Err()
}

// ToggleItem flips an item's done flag and returns the new state.
func (s *Store) ToggleItem(id string) (bool, error) {
	res, err := s.db.Exec(`UPDATE items SET done = 1 - done WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggling item %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	var done int
	if err := s.db.QueryRow(`SELECT done FROM items WHERE id = ?`, id).Scan(&done); err != nil {
		return false, err
	}
	return done != 0, nil
}

// DeleteItem removes an item. The legacy tables never soft-delete.
func (s *Store) DeleteItem(id string) error {
	_, err := s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	return err
}
