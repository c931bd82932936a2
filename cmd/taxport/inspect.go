// Inspect command: dump the parsed model for debugging.
package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var flagInspectForm string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> <client-id>",
	Short: "Dump the parsed model for one client",
	Long: `Inspect parses an export file and dumps the full parsed structure of a
single client batch, for debugging mapping tables and field layouts.
With --form only that form's entries are dumped.

Example:
  taxport inspect exports/clients_2024.txt SMITH01
  taxport inspect exports/clients_2024.txt SMITH01 --form 181`,
	Args: cobra.ExactArgs(2),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagInspectForm, "form", "", "dump only this form code")
}

func runInspect(cmd *cobra.Command, args []string) error {
	batches, err := parseFile(args[0])
	if err != nil {
		return err
	}
	b, err := findBatch(batches, args[1])
	if err != nil {
		return err
	}

	if flagInspectForm != "" {
		forms := b.FormsByCode(flagInspectForm)
		if len(forms) == 0 {
			return fmt.Errorf("client %s has no form %s (forms: %v)", b.Header.ClientID, flagInspectForm, b.FormCodes())
		}
		for _, f := range forms {
			fmt.Print(spew.Sdump(f))
		}
		return nil
	}

	fmt.Print(spew.Sdump(b))
	return nil
}
