package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubescribe/internal/export"
)

func newConcatCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "concat <transcripts-dir>",
		Short: "Concatenate a channel's transcript files into one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := export.ConcatTranscriptsToFile(args[0], outPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transcripts to %s\n", count, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "transcripts.txt", "Output file for the concatenated transcripts")
	return cmd
}
