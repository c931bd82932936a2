// Root command for the taxport CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taxport/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// sysErr marks failures of the local environment (database, filesystem)
// rather than of the user's input, so main exits with a distinct code.
type sysErr struct{ err error }

func (e sysErr) Error() string { return e.err.Error() }
func (e sysErr) Unwrap() error { return e.err }

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagMapping   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configDataDir string
	configMapping string
)

var rootCmd = &cobra.Command{
	Use:   "taxport",
	Short: "Taxport parses tax-software export files",
	Long: `Taxport reconstructs a structured document model from the line-oriented
export files produced by tax-preparation software: forms, sections,
entries, and fields, with cross-referenced broker statements and
prior-year tracking. The parsed model feeds client document checklists
and can be persisted for downstream querying.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir := paths.ResolveConfigDir(flagConfigDir)

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configMapping = cfg.GetString(cfgKeyMappingFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.taxport)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.taxport-db)")
	rootCmd.PersistentFlags().StringVar(&flagMapping, "mapping", "", "field mapping file (default: built-in table)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(inspectCmd)
}

// resolveDataDir returns the data directory with flag > config > env >
// default precedence.
func resolveDataDir() string {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}
