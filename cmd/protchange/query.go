package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/protchange/internal/annotate"
	"github.com/inodb/protchange/internal/duckdb"
	"github.com/inodb/protchange/internal/output"
)

func newQueryCmd() *cobra.Command {
	var gene, protein string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search rows stored with --db",
		Long:  "Search rows stored by earlier runs with --db, by gene and optionally by HGVS protein change.",
		Example: `  protchange query --db rows.duckdb --gene KRAS
  protchange query --db rows.duckdb --gene KRAS --protein p.Gly12Cys`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, gene, protein)
		},
	}

	cmd.Flags().StringVar(&gene, "gene", "", "Gene name to search for")
	cmd.Flags().StringVar(&protein, "protein", "", "HGVS protein change to match (e.g. p.Gly12Cys)")
	cmd.MarkFlagRequired("gene")

	return cmd
}

func runQuery(cmd *cobra.Command, gene, protein string) error {
	store, err := openExistingStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var rows []*annotate.Row
	if protein != "" {
		rows, err = store.SearchByProteinChange(gene, protein)
	} else {
		rows, err = store.SearchByGene(gene)
	}
	if err != nil {
		return err
	}

	w := output.NewTextWriter(cmd.OutOrStdout())
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

// openExistingStore opens the configured row store. Unlike a resolve run it
// never creates the database.
func openExistingStore() (*duckdb.Store, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if settings.DB == "" {
		return nil, fmt.Errorf("no database configured, use --db or set db in the config")
	}
	if _, err := os.Stat(settings.DB); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return duckdb.Open(settings.DB)
}
