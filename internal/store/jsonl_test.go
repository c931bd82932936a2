package store

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

func TestRecordsFlattenEntries(t *testing.T) {
	b := sampleBatch()

	recs := Records(b)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "SMITH01", r.ClientID)
	assert.Equal(t, 2024, r.TaxYear)
	assert.Equal(t, "181", r.FormCode)
	assert.Equal(t, 1, r.Section)
	assert.Equal(t, "FIRST BANK", r.Fields["40"])
	assert.Equal(t, "512.33", r.Fields["71"])
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.jsonl")

	err := WriteJSONL(path, []*types.ClientBatch{sampleBatch(), sampleBatch()})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec EntryRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		assert.Equal(t, "SMITH01", rec.ClientID)
		lines++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 2, lines)
}

func TestWriteJSONLReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, WriteJSONL(path, []*types.ClientBatch{sampleBatch()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestWriteJSONLLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entries.jsonl")

	require.NoError(t, WriteJSONL(path, []*types.ClientBatch{sampleBatch()}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "entries.jsonl", entries[0].Name())
}
