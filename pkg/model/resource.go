// Package model defines the core data types shared across lifeos:
// persisted resources, their transient render projection (Node), and the
// small enumerations both sides agree on.
package model

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ResourceType classifies a persisted resource. The hierarchy is untyped
// at the storage layer; the type drives default rendering and which pane
// operations apply.
type ResourceType string

const (
	ResourceFolder   ResourceType = "folder"
	ResourceProject  ResourceType = "project"
	ResourceTask     ResourceType = "task"
	ResourceNote     ResourceType = "note"
	ResourceDocument ResourceType = "document"
	ResourceRecipe   ResourceType = "recipe"
	ResourceEvent    ResourceType = "event"
)

// KnownResourceTypes lists every type the store accepts, in display order.
var KnownResourceTypes = []ResourceType{
	ResourceFolder,
	ResourceProject,
	ResourceTask,
	ResourceNote,
	ResourceDocument,
	ResourceRecipe,
	ResourceEvent,
}

// IsContainer reports whether resources of this type normally hold children.
func (t ResourceType) IsContainer() bool {
	return t == ResourceFolder || t == ResourceProject
}

// ResourceStatus is the lifecycle state of a resource.
type ResourceStatus string

const (
	StatusActive   ResourceStatus = "active"
	StatusDone     ResourceStatus = "done"
	StatusArchived ResourceStatus = "archived"
)

// MetaData is the free-form key/value bag attached to every resource.
// Renderers read display configuration out of it ("variant", slot values);
// the launcher reads the app_root flag. Values survive a JSON round-trip,
// so anything decoded from the store is string/float64/bool/map/slice.
type MetaData map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (m MetaData) String(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Bool returns the bool value for key. JSON decoding may have produced a
// real bool or the strings "true"/"false"; both are accepted.
func (m MetaData) Bool(key string) bool {
	if m == nil {
		return false
	}
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Encode serializes the bag to JSON for storage. A nil or empty bag
// encodes to the empty string so the column stays NULL-ish.
func (m MetaData) Encode() (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeMetaData parses a stored meta_data column. Empty input yields nil.
func DecodeMetaData(s string) (MetaData, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil, nil
	}
	var m MetaData
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Resource is a persisted record in the generic hierarchy. ParentID forms
// an adjacency list; Path is the materialized path maintained by the store.
// Deleted resources stay in the table with DeletedAt set and are excluded
// from every read path.
type Resource struct {
	ID          string         `json:"id"`
	ParentID    *string        `json:"parent_id,omitempty"`
	Path        string         `json:"path"`
	Type        ResourceType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      ResourceStatus `json:"status"`
	MetaData    MetaData       `json:"meta_data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
}

// Deleted reports whether the resource is soft-deleted.
func (r *Resource) Deleted() bool {
	return r.DeletedAt != nil
}

// IsAppRoot reports whether the resource is flagged as a launcher mount
// point ("context root") via its metadata bag.
func (r *Resource) IsAppRoot() bool {
	return r.MetaData.Bool("app_root")
}

// Variant returns the explicit renderer variant from metadata, or "".
func (r *Resource) Variant() string {
	return r.MetaData.String("variant")
}

// Breadcrumb is one entry in a pane's navigation stack.
type Breadcrumb struct {
	ID    string
	Title string
	Path  string
}
