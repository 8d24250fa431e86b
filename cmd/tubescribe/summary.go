package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tubescribe/internal/pipeline"
)

// renderSummary formats the end-of-run report as a small table.
func renderSummary(report *pipeline.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Download complete: " + report.ChannelName)

	tw.AppendRow(table.Row{"Videos", report.Total})
	tw.AppendRow(table.Row{"Transcripts saved", report.Succeeded})
	if report.Skipped > 0 {
		tw.AppendRow(table.Row{"Already on disk", report.Skipped})
	}
	tw.AppendRow(table.Row{"Failed", report.Failed})
	tw.AppendRow(table.Row{"Duration", report.Duration.Round(time.Second).String()})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Transcripts", report.TranscriptDir})
	tw.AppendRow(table.Row{"Metadata", report.MetadataPath})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	return fmt.Sprintln(tw.Render())
}
