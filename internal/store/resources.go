package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vanderheijden86/lifeos/pkg/model"
)

const resourceColumns = `id, parent_id, path, type, title, description, status, meta_data, created_at, updated_at, deleted_at`

// scanResource reads one row in resourceColumns order.
func scanResource(scan func(dest ...any) error) (model.Resource, error) {
	var r model.Resource
	var parentID, description, metaData, deletedAt sql.NullString
	var createdAt, updatedAt sql.NullString
	var typ, status string

	err := scan(&r.ID, &parentID, &r.Path, &typ, &r.Title, &description, &status,
		&metaData, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return r, err
	}

	if parentID.Valid && parentID.String != "" {
		p := parentID.String
		r.ParentID = &p
	}
	r.Type = model.ResourceType(typ)
	r.Status = model.ResourceStatus(status)
	if description.Valid {
		r.Description = description.String
	}
	if metaData.Valid {
		meta, err := model.DecodeMetaData(metaData.String)
		if err == nil {
			r.MetaData = meta
		}
		// Malformed metadata degrades to an empty bag rather than
		// failing the whole read.
	}
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	if deletedAt.Valid && deletedAt.String != "" {
		t := parseTime(deletedAt)
		r.DeletedAt = &t
	}
	return r, nil
}

// ListResources returns every live resource, ordered by path so parents
// come before their children.
func (s *Store) ListResources() ([]model.Resource, error) {
	return s.queryResources(`SELECT ` + resourceColumns + ` FROM resources WHERE deleted_at IS NULL ORDER BY path`)
}

// ListChildren returns the live children of parentID ordered by title.
// An empty parentID lists top-level resources.
func (s *Store) ListChildren(parentID string) ([]model.Resource, error) {
	if parentID == "" {
		return s.queryResources(`SELECT `+resourceColumns+` FROM resources WHERE parent_id IS NULL AND deleted_at IS NULL ORDER BY title, id`)
	}
	return s.queryResources(`SELECT `+resourceColumns+` FROM resources WHERE parent_id = ? AND deleted_at IS NULL ORDER BY title, id`, parentID)
}

// ListSubtree returns the live resources whose materialized path sits at or
// under the given resource, ordered by path. This is how panes load their
// context root's whole hierarchy in one query.
func (s *Store) ListSubtree(rootID string) ([]model.Resource, error) {
	root, err := s.GetResource(rootID)
	if err != nil {
		return nil, err
	}
	like := root.Path + "/%"
	return s.queryResources(`SELECT `+resourceColumns+` FROM resources WHERE (id = ? OR path LIKE ?) AND deleted_at IS NULL ORDER BY path`,
		rootID, like)
}

// SearchResources returns live resources whose title or description
// contains the query, case-insensitively, bounded to the subtree of
// rootID when rootID is non-empty.
func (s *Store) SearchResources(rootID, query string) ([]model.Resource, error) {
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if rootID == "" {
		return s.queryResources(`SELECT `+resourceColumns+` FROM resources
			WHERE deleted_at IS NULL AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)
			ORDER BY title, id`, q, q)
	}
	root, err := s.GetResource(rootID)
	if err != nil {
		return nil, err
	}
	return s.queryResources(`SELECT `+resourceColumns+` FROM resources
		WHERE deleted_at IS NULL AND (id = ? OR path LIKE ?)
		AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)
		ORDER BY title, id`, rootID, root.Path+"/%", q, q)
}

// ContextRoots returns live resources flagged as launcher mount points.
// The app_root flag lives in the JSON metadata bag, so this filters in Go
// rather than trusting JSON1 to be available.
func (s *Store) ContextRoots() ([]model.Resource, error) {
	all, err := s.queryResources(`SELECT ` + resourceColumns + ` FROM resources WHERE deleted_at IS NULL AND meta_data LIKE '%app_root%' ORDER BY title`)
	if err != nil {
		return nil, err
	}
	roots := all[:0]
	for _, r := range all {
		if r.IsAppRoot() {
			roots = append(roots, r)
		}
	}
	return roots, nil
}

// GetResource returns one live resource by id.
func (s *Store) GetResource(id string) (model.Resource, error) {
	row := s.db.QueryRow(`SELECT `+resourceColumns+` FROM resources WHERE id = ? AND deleted_at IS NULL`, id)
	r, err := scanResource(row.Scan)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return r, fmt.Errorf("loading resource %s: %w", id, err)
	}
	return r, nil
}

// CountChildren returns the number of live children under parentID.
func (s *Store) CountChildren(parentID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM resources WHERE parent_id = ? AND deleted_at IS NULL`, parentID).Scan(&count)
	return count, err
}

// CreateResource inserts a new resource under parentID (empty for
// top-level) and returns it with id, path, and timestamps filled in.
func (s *Store) CreateResource(parentID string, typ model.ResourceType, title string, meta model.MetaData) (model.Resource, error) {
	var zero model.Resource
	title = strings.TrimSpace(title)
	if title == "" {
		return zero, ErrEmptyTitle
	}
	if !knownType(typ) {
		return zero, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}

	id := uuid.NewString()
	path := "/" + id
	var parentPtr any
	if parentID != "" {
		parent, err := s.GetResource(parentID)
		if err != nil {
			return zero, fmt.Errorf("%w: %s", ErrBadParent, parentID)
		}
		path = parent.Path + "/" + id
		parentPtr = parentID
	}

	encoded, err := meta.Encode()
	if err != nil {
		return zero, fmt.Errorf("encoding meta_data: %w", err)
	}
	ts := now()

	_, err = s.db.Exec(`INSERT INTO resources (id, parent_id, path, type, title, status, meta_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, parentPtr, path, string(typ), title, string(model.StatusActive), nullable(encoded), ts, ts)
	if err != nil {
		return zero, fmt.Errorf("inserting resource: %w", err)
	}
	return s.GetResource(id)
}

// UpdateResource writes title, description, status, and meta_data for an
// existing resource. Structure (parent, path, type) is immutable here;
// moving is a separate concern the panes do not expose.
func (s *Store) UpdateResource(r model.Resource) error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	encoded, err := r.MetaData.Encode()
	if err != nil {
		return fmt.Errorf("encoding meta_data: %w", err)
	}
	res, err := s.db.Exec(`UPDATE resources SET title = ?, description = ?, status = ?, meta_data = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		strings.TrimSpace(r.Title), r.Description, string(r.Status), nullable(encoded), now(), r.ID)
	if err != nil {
		return fmt.Errorf("updating resource %s: %w", r.ID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("resource %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// DeleteResource soft-deletes a resource and its whole subtree. Rows stay
// in the table with deleted_at set; every read path filters them.
func (s *Store) DeleteResource(id string) error {
	r, err := s.GetResource(id)
	if err != nil {
		return err
	}
	ts := now()
	_, err = s.db.Exec(`UPDATE resources SET deleted_at = ?, updated_at = ? WHERE deleted_at IS NULL AND (id = ? OR path LIKE ?)`,
		ts, ts, id, r.Path+"/%")
	if err != nil {
		return fmt.Errorf("deleting resource %s: %w", id, err)
	}
	return nil
}

// RecentResources returns the most recently updated live resources, newest
// first, capped at limit. Feeds the feed pane.
func (s *Store) RecentResources(limit int) ([]model.Resource, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.queryResources(`SELECT `+resourceColumns+` FROM resources WHERE deleted_at IS NULL ORDER BY updated_at DESC LIMIT ?`, limit)
}

// TouchResource bumps updated_at without other changes, so activity like
// completing a checklist surfaces in the feed.
func (s *Store) TouchResource(id string) error {
	_, err := s.db.Exec(`UPDATE resources SET updated_at = ? WHERE id = ? AND deleted_at IS NULL`, now(), id)
	return err
}

func (s *Store) queryResources(query string, args ...any) ([]model.Resource, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer rows.Close()

	var resources []model.Resource
	for rows.Next() {
		r, err := scanResource(rows.Scan)
		if err != nil {
			continue
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

func knownType(typ model.ResourceType) bool {
	for _, t := range model.KnownResourceTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
