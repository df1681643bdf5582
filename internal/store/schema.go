package store

// Schema DDL. Applied with CREATE TABLE IF NOT EXISTS on every open so a
// fresh database file is usable immediately and existing files are left
// alone. meta_data is a JSON text column; deleted_at NULL means live.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS resources (
    id TEXT PRIMARY KEY,
    parent_id TEXT,
    path TEXT NOT NULL,
    type TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL DEFAULT 'active',
    meta_data TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_resources_parent ON resources(parent_id) WHERE deleted_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_resources_updated ON resources(updated_at);

CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    household_id TEXT,
    display_name TEXT NOT NULL,
    avatar TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS households (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Legacy to-do feature: categories hold lists, lists hold items. Kept as
-- separate tables rather than resources because the household pane still
-- reads them in this shape.
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    household_id TEXT,
    name TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS lists (
    id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (category_id) REFERENCES categories(id)
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    list_id TEXT NOT NULL,
    label TEXT NOT NULL,
    done INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (list_id) REFERENCES lists(id)
);
`
