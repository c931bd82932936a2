package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// DBFileName is the SQLite database file created inside the data directory.
const DBFileName = "taxport.db"

// Store wraps the SQLite database holding parsed batches.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates the data directory if needed, opens the database, and
// ensures the schema exists.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveBatch persists one batch and its linked entities in a single
// transaction, returning the generated batch ID.
func (s *Store) SaveBatch(b *types.ClientBatch, linked []types.LinkedEntity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", types.ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	batchID := newID()
	_, err = tx.Exec(
		"INSERT INTO batches (batch_id, client_id, tax_year, type_code, incomplete, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		batchID, b.Header.ClientID, b.Header.Year, b.Header.TypeCode, boolInt(b.Incomplete), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert batch: %w", err)
	}

	for pos, form := range b.Forms {
		if err := insertForm(tx, batchID, pos, form); err != nil {
			return "", err
		}
	}

	for _, le := range linked {
		_, err := tx.Exec(
			"INSERT INTO linked_entities (entity_id, batch_id, grp, header_code, child_code, structural_idx, unlinked) VALUES (?, ?, ?, ?, ?, ?, ?)",
			newID(), batchID, le.Group, le.HeaderCode, le.ChildCode, le.Index, boolInt(le.Unlinked),
		)
		if err != nil {
			return "", fmt.Errorf("insert linked entity: %w", err)
		}
	}

	for _, w := range b.Warnings {
		_, err := tx.Exec(
			"INSERT INTO warnings (batch_id, code, form, section_idx, field, message) VALUES (?, ?, ?, ?, ?, ?)",
			batchID, w.Code, w.Form, w.Section, w.Field, w.Message,
		)
		if err != nil {
			return "", fmt.Errorf("insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit batch: %w", err)
	}
	return batchID, nil
}

func insertForm(tx *sql.Tx, batchID string, pos int, form *types.Form) error {
	formID := newID()
	_, err := tx.Exec(
		"INSERT INTO forms (form_id, batch_id, position, code, label) VALUES (?, ?, ?, ?, ?)",
		formID, batchID, pos, form.Code, form.Label,
	)
	if err != nil {
		return fmt.Errorf("insert form %s: %w", form.Code, err)
	}

	for _, section := range form.Sections {
		for _, entry := range section.Entries {
			entryID := newID()
			_, err := tx.Exec(
				"INSERT INTO entries (entry_id, form_id, section_idx, ordinal, implicit) VALUES (?, ?, ?, ?, ?)",
				entryID, formID, section.Index, entry.Ordinal, boolInt(entry.Implicit),
			)
			if err != nil {
				return fmt.Errorf("insert entry: %w", err)
			}
			for _, f := range entry.Fields {
				if _, err := tx.Exec(
					"INSERT INTO fields (entry_id, key, value) VALUES (?, ?, ?)",
					entryID, f.Key, f.Value,
				); err != nil {
					return fmt.Errorf("insert field %s: %w", f.Key, err)
				}
			}
			for _, lb := range entry.Lists {
				for i, row := range lb.Rows {
					if _, err := tx.Exec(
						"INSERT INTO list_rows (entry_id, field_key, position, row_id, row_value) VALUES (?, ?, ?, ?, ?)",
						entryID, lb.FieldKey, i, row.ID, row.Value,
					); err != nil {
						return fmt.Errorf("insert list row: %w", err)
					}
				}
			}
		}
	}
	return nil
}

// BatchSummary is one row of the batches table.
type BatchSummary struct {
	BatchID    string
	ClientID   string
	TaxYear    int
	Incomplete bool
	CreatedAt  string
}

// Batches lists the stored batches, newest first.
func (s *Store) Batches() ([]BatchSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}

	rows, err := s.db.Query("SELECT batch_id, client_id, tax_year, incomplete, created_at FROM batches ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var b BatchSummary
		var incomplete int
		if err := rows.Scan(&b.BatchID, &b.ClientID, &b.TaxYear, &incomplete, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.Incomplete = incomplete != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

// newID generates a UUID v7 row identifier, falling back to v4 when the
// clock-based generator fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
