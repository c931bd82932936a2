// Checklist command: generate document checklists from a parsed export.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taxport/internal/checklist"
	"github.com/mesh-intelligence/taxport/pkg/types"
)

var (
	flagChecklistYear   int
	flagChecklistOut    string
	flagChecklistFormat string
	flagChecklistClient string
)

var checklistCmd = &cobra.Command{
	Use:   "checklist <file>",
	Short: "Generate document checklists for each client",
	Long: `Checklist parses an export file and writes one document checklist per
client, listing the tax documents expected for the upcoming year based
on what was reported last year.

By default checklists print to stdout. With --out, each client's
checklist is written to <out>/<client-id>.md (or .txt with
--format text).

Example:
  taxport checklist exports/clients_2024.txt
  taxport checklist exports/clients_2024.txt --out checklists --format text
  taxport checklist exports/clients_2024.txt --client SMITH01`,
	Args: cobra.ExactArgs(1),
	RunE: runChecklist,
}

func init() {
	checklistCmd.Flags().IntVar(&flagChecklistYear, "year", 0, "tax year the checklist is for (default: file year + 1)")
	checklistCmd.Flags().StringVar(&flagChecklistOut, "out", "", "directory to write checklist files to (default: stdout)")
	checklistCmd.Flags().StringVar(&flagChecklistFormat, "format", "markdown", "output format: markdown or text")
	checklistCmd.Flags().StringVar(&flagChecklistClient, "client", "", "generate for a single client ID")
}

func runChecklist(cmd *cobra.Command, args []string) error {
	if flagChecklistFormat != "markdown" && flagChecklistFormat != "text" {
		return fmt.Errorf("unknown format %q (want markdown or text)", flagChecklistFormat)
	}

	m, err := loadMapping()
	if err != nil {
		return err
	}
	batches, err := parseFile(args[0])
	if err != nil {
		return err
	}
	if flagChecklistClient != "" {
		b, err := findBatch(batches, flagChecklistClient)
		if err != nil {
			return err
		}
		batches = []*types.ClientBatch{b}
	}

	if flagChecklistOut != "" {
		if err := os.MkdirAll(flagChecklistOut, 0o755); err != nil {
			return sysErr{fmt.Errorf("create output directory: %w", err)}
		}
	}

	gen := checklist.NewGenerator(m)
	for _, b := range batches {
		year := flagChecklistYear
		if year == 0 {
			year = b.Header.Year + 1
		}
		cl := gen.Generate(b, year)

		var body, ext string
		if flagChecklistFormat == "text" {
			body, ext = cl.Text(), ".txt"
		} else {
			body, ext = cl.Markdown(), ".md"
		}

		if flagChecklistOut == "" {
			fmt.Print(body)
			fmt.Println()
			continue
		}
		path := filepath.Join(flagChecklistOut, b.Header.ClientID+ext)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return sysErr{fmt.Errorf("write %s: %w", path, err)}
		}
		fmt.Printf("wrote %s (%d items)\n", path, len(cl.Items))
	}
	return nil
}
