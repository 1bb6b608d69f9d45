package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Short:   "Remove all rows stored with --db",
		Example: `  protchange clear --db rows.duckdb`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExistingStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ClearRows(); err != nil {
				return fmt.Errorf("clear rows: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored rows")
			return nil
		},
	}
}
