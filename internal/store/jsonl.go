package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/mesh-intelligence/taxport/pkg/types"
)

// EntryRecord is one JSONL export line: a flattened view of one entry.
type EntryRecord struct {
	ClientID  string            `json:"client_id"`
	TaxYear   int               `json:"tax_year"`
	FormCode  string            `json:"form_code"`
	FormLabel string            `json:"form_label"`
	Section   int               `json:"section"`
	Ordinal   int               `json:"ordinal"`
	Fields    map[string]string `json:"fields"`
}

// Records flattens a batch into export records, one per entry, in source
// order.
func Records(b *types.ClientBatch) []EntryRecord {
	var out []EntryRecord
	for _, form := range b.Forms {
		for _, section := range form.Sections {
			for _, entry := range section.Entries {
				fields := make(map[string]string, len(entry.Fields))
				for k, f := range entry.Fields {
					fields[k] = f.Value
				}
				out = append(out, EntryRecord{
					ClientID:  b.Header.ClientID,
					TaxYear:   b.Header.Year,
					FormCode:  form.Code,
					FormLabel: form.Label,
					Section:   section.Index,
					Ordinal:   entry.Ordinal,
					Fields:    fields,
				})
			}
		}
	}
	return out
}

// WriteJSONL atomically writes the batches' entry records to a JSONL file
// using the temp-file, fsync, rename pattern.
func WriteJSONL(path string, batches []*types.ClientBatch) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, b := range batches {
		for _, rec := range Records(b) {
			line, err := json.Marshal(rec)
			if err != nil {
				return fail("marshal record", err)
			}
			if _, err := w.Write(line); err != nil {
				return fail("write record", err)
			}
			if err := w.WriteByte('\n'); err != nil {
				return fail("write newline", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flush buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
