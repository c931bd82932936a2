// Parse command: parse an export file and print a per-client summary.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse an export file and summarize its clients",
	Long: `Parse reads an export file, partitions it into client batches, and
prints a summary of each: forms found, entry counts, and any warnings
recorded while parsing.

Example:
  taxport parse exports/clients_2024.txt
  taxport parse exports/clients_2024.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// clientSummary is the JSON shape of one batch summary.
type clientSummary struct {
	ClientID   string   `json:"client_id"`
	TaxYear    int      `json:"tax_year"`
	TypeCode   string   `json:"type_code"`
	Forms      int      `json:"forms"`
	Entries    int      `json:"entries"`
	FieldLines int      `json:"field_lines"`
	OtherLines int      `json:"other_lines"`
	Incomplete bool     `json:"incomplete"`
	Warnings   []string `json:"warnings,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	batches, err := parseFile(args[0])
	if err != nil {
		return err
	}

	var summaries []clientSummary
	for _, b := range batches {
		s := clientSummary{
			ClientID:   b.Header.ClientID,
			TaxYear:    b.Header.Year,
			TypeCode:   b.Header.TypeCode,
			Forms:      len(b.Forms),
			FieldLines: b.Stats.FieldLines,
			OtherLines: b.Stats.OtherLines,
			Incomplete: b.Incomplete,
		}
		for _, f := range b.Forms {
			s.Entries += len(f.Entries())
		}
		for _, w := range b.Warnings {
			s.Warnings = append(s.Warnings, w.String())
		}
		summaries = append(summaries, s)
	}

	if flagJSON {
		out, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summaries: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("%s (%d, type %s): %d forms, %d entries", s.ClientID, s.TaxYear, s.TypeCode, s.Forms, s.Entries)
		if s.Incomplete {
			fmt.Print(" [incomplete]")
		}
		fmt.Println()
		for _, w := range s.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
	fmt.Printf("%d client(s)\n", len(summaries))
	return nil
}
