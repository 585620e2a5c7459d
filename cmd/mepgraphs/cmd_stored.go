package main

import (
	"fmt"

	"mepgraphs/internal/domain"
	"mepgraphs/internal/repository/sqlite"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var storedDBPath string

// storedCmd lists the graphs previous exports left in the database
var storedCmd = &cobra.Command{
	Use:   "stored",
	Short: "List JSON graphs stored by previous exports",
	Args:  cobra.NoArgs,
	RunE:  runStored,
}

func init() {
	storedCmd.Flags().StringVar(&storedDBPath, "db", "", "SQLite parameter database (overrides config)")
}

func runStored(cmd *cobra.Command, args []string) error {
	path := cfg.Database.Path
	if cmd.Flags().Changed("db") {
		path = storedDBPath
	}

	repo, err := sqlite.New(path)
	if err != nil {
		return err
	}
	defer repo.Close()

	values, err := repo.ListValues(cmd.Context(), domain.GraphParameterName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(values) == 0 {
		fmt.Fprintf(out, "no %s values in %s\n", domain.GraphParameterName, path)
		return nil
	}
	for _, v := range values {
		run := v.RunID
		if run == "" {
			run = "-"
		}
		fmt.Fprintf(out, "  %-16s %-36s %10s  %s\n", v.ElementID, run, humanize.Bytes(uint64(len(v.Value))), humanize.Time(v.UpdatedAt))
	}
	fmt.Fprintf(out, "%d stored graphs\n", len(values))
	return nil
}
