// Export command: persist parsed batches to the local database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taxport/internal/link"
	"github.com/mesh-intelligence/taxport/internal/store"
)

var flagExportJSONL string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Parse an export file and save it to the database",
	Long: `Export parses an export file, links broker statements, and saves every
client batch to the local sqlite database in the data directory. With
--jsonl the flattened entries are additionally written to a JSON Lines
file.

Example:
  taxport export exports/clients_2024.txt
  taxport export exports/clients_2024.txt --jsonl entries.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportJSONL, "jsonl", "", "also write flattened entries to this JSON Lines file")
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := loadMapping()
	if err != nil {
		return err
	}
	batches, err := parseFile(args[0])
	if err != nil {
		return err
	}

	st, err := store.Open(resolveDataDir())
	if err != nil {
		return sysErr{err}
	}
	defer st.Close()

	linker := link.New(m.Groups())
	for _, b := range batches {
		linked := linker.Link(b)
		id, err := st.SaveBatch(b, linked)
		if err != nil {
			return sysErr{fmt.Errorf("save client %s: %w", b.Header.ClientID, err)}
		}
		fmt.Printf("saved %s (%d forms, %d linked) as %s\n", b.Header.ClientID, len(b.Forms), len(linked), id)
	}

	if flagExportJSONL != "" {
		if err := store.WriteJSONL(flagExportJSONL, batches); err != nil {
			return sysErr{err}
		}
		fmt.Printf("wrote %s\n", flagExportJSONL)
	}
	return nil
}
