// Shared helpers for taxport CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/taxport/internal/batch"
	"github.com/mesh-intelligence/taxport/internal/mapping"
	"github.com/mesh-intelligence/taxport/internal/scan"
	"github.com/mesh-intelligence/taxport/pkg/types"
)

// loadMapping returns the mapping table: --mapping flag, then config.yaml,
// then the built-in table.
func loadMapping() (*mapping.Mapping, error) {
	path := flagMapping
	if path == "" {
		path = configMapping
	}
	if path == "" {
		return mapping.Default(), nil
	}
	m, err := mapping.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	return m, nil
}

// parseFile reads and parses an export file into client batches.
func parseFile(path string) ([]*types.ClientBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sc, err := scan.New(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return batch.New(sc).All(), nil
}

// findBatch returns the batch for a client ID, or every-batch's IDs for
// the error message when absent.
func findBatch(batches []*types.ClientBatch, clientID string) (*types.ClientBatch, error) {
	var ids []string
	for _, b := range batches {
		if b.Header.ClientID == clientID {
			return b, nil
		}
		ids = append(ids, b.Header.ClientID)
	}
	return nil, fmt.Errorf("client %q not found (clients: %v)", clientID, ids)
}
