package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tubescribe/internal/deps"
)

func newDepsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external binaries the pipeline depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, nil)
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Dependency", "Command", "Available", "Detail"})
			for _, status := range statuses {
				available := "yes"
				if !status.Available {
					available = "no"
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Description
				}
				tw.AppendRow(table.Row{status.Name, status.Command, available, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %v", missing)
			}
			return nil
		},
	}
}
