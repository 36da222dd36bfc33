package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apexsigns/signcalc/internal/catalog"
)

var catalogFile string

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Pole section catalog queries and capacity checks",
	Long: `Query the pole section catalog and check individual sections
against design demands.

Subcommands:
  list   - List catalog sections, optionally filtered
  check  - AISC 360-22 capacity check of one designation

The built-in catalog carries HSS, Pipe, W and aluminum tube sections.
A JSON catalog file can replace it per invocation (--catalog) or via
the SIGNCALC_CATALOG_FILE environment variable.`,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	// Available to every command that reads the catalog, not just sections.
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "JSON catalog file replacing the built-in tables")
}

// loadCatalog resolves the section dataset: explicit flag, then the
// environment, then the built-in tables.
func loadCatalog() (*catalog.Catalog, error) {
	path := catalogFile
	if path == "" && cfg != nil {
		path = cfg.CatalogFile
	}
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Builtin(), nil
}
