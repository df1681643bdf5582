package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Household groups profiles that share chores, chat, and the legacy lists.
type Household struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Profile is a person. Avatar is a short glyph the UI shows next to the
// display name.
type Profile struct {
	ID          string
	HouseholdID string
	DisplayName string
	Avatar      string
	CreatedAt   time.Time
}

// CreateHousehold inserts a household.
func (s *Store) CreateHousehold(name string) (Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Household{}, ErrEmptyTitle
	}
	h := Household{ID: uuid.NewString(), Name: name}
	ts := now()
	_, err := s.db.Exec(`INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)`, h.ID, h.Name, ts)
	if err != nil {
		return Household{}, fmt.Errorf("inserting household: %w", err)
	}
	h.CreatedAt, _ = time.Parse(timeFormat, ts)
	return h, nil
}

// Households returns every household, oldest first.
func (s *Store) Households() ([]Household, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM households ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying households: %w", err)
	}
	defer rows.Close()

	var out []Household
	for rows.Next() {
		var h Household
		var created sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &created); err != nil {
			continue
		}
		h.CreatedAt = parseTime(created)
		out = append(out, h)
	}
	return out, rows.Err()
}

// CreateProfile inserts a profile into a household. householdID may be
// empty for a solo profile.
func (s *Store) CreateProfile(householdID, displayName, avatar string) (Profile, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return Profile{}, ErrEmptyTitle
	}
	p := Profile{ID: uuid.NewString(), HouseholdID: householdID, DisplayName: displayName, Avatar: avatar}
	ts := now()
	_, err := s.db.Exec(`INSERT INTO profiles (id, household_id, display_name, avatar, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, nullable(householdID), p.DisplayName, nullable(avatar), ts)
	if err != nil {
		return Profile{}, fmt.Errorf("inserting profile: %w", err)
	}
	p.CreatedAt, _ = time.Parse(timeFormat, ts)
	return p, nil
}

// Profiles returns the profiles of a household (or all profiles when
// householdID is empty), by display name.
func (s *Store) Profiles(householdID string) ([]Profile, error) {
	var rows *sql.Rows
	var err error
	if householdID == "" {
		rows, err = s.db.Query(`SELECT id, household_id, display_name, avatar, created_at FROM profiles ORDER BY display_name`)
	} else {
		rows, err = s.db.Query(`SELECT id, household_id, display_name, avatar, created_at FROM profiles WHERE household_id = ? ORDER BY display_name`, householdID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		var household, avatar, created sql.NullString
		if err := rows.Scan(&p.ID, &household, &p.DisplayName, &avatar, &created); err != nil {
			continue
		}
		p.HouseholdID = household.String
		p.Avatar = avatar.String
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}
