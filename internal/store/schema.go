// Package store persists parsed client batches to SQLite so downstream
// tooling can query them without re-parsing the export file, and exports
// them as JSONL.
package store

// Schema DDL. The store is append-oriented: one row per batch, form,
// entry, field, list row, linked entity, and warning.
const (
	createBatches = `CREATE TABLE IF NOT EXISTS batches (
    batch_id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    tax_year INTEGER NOT NULL,
    type_code TEXT,
    incomplete INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createForms = `CREATE TABLE IF NOT EXISTS forms (
    form_id TEXT PRIMARY KEY,
    batch_id TEXT NOT NULL REFERENCES batches(batch_id),
    position INTEGER NOT NULL,
    code TEXT NOT NULL,
    label TEXT
);`

	createEntries = `CREATE TABLE IF NOT EXISTS entries (
    entry_id TEXT PRIMARY KEY,
    form_id TEXT NOT NULL REFERENCES forms(form_id),
    section_idx INTEGER NOT NULL,
    ordinal INTEGER NOT NULL,
    implicit INTEGER NOT NULL
);`

	createFields = `CREATE TABLE IF NOT EXISTS fields (
    entry_id TEXT NOT NULL REFERENCES entries(entry_id),
    key TEXT NOT NULL,
    value TEXT,
    PRIMARY KEY (entry_id, key)
);`

	createListRows = `CREATE TABLE IF NOT EXISTS list_rows (
    entry_id TEXT NOT NULL REFERENCES entries(entry_id),
    field_key TEXT NOT NULL,
    position INTEGER NOT NULL,
    row_id TEXT,
    row_value TEXT
);`

	createLinked = `CREATE TABLE IF NOT EXISTS linked_entities (
    entity_id TEXT PRIMARY KEY,
    batch_id TEXT NOT NULL REFERENCES batches(batch_id),
    grp TEXT NOT NULL,
    header_code TEXT NOT NULL,
    child_code TEXT NOT NULL,
    structural_idx INTEGER NOT NULL,
    unlinked INTEGER NOT NULL
);`

	createWarnings = `CREATE TABLE IF NOT EXISTS warnings (
    batch_id TEXT NOT NULL REFERENCES batches(batch_id),
    code TEXT NOT NULL,
    form TEXT,
    section_idx INTEGER,
    field TEXT,
    message TEXT
);`
)

// schemaStatements lists the DDL in creation order.
var schemaStatements = []string{
	createBatches,
	createForms,
	createEntries,
	createFields,
	createListRows,
	createLinked,
	createWarnings,
}
