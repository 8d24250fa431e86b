package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescribe/internal/export"
)

func newSnapshotCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "snapshot [dir]",
		Short: "Dump a directory outline with file contents into one text file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			if err := export.SnapshotToFile(root, outPath, export.DefaultSnapshotOptions()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote snapshot to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "project_contents.txt", "Output file for the snapshot")
	return cmd
}
