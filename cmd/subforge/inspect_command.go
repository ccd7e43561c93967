package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subforge/internal/subtitles"
)

func newInspectCommand() *cobra.Command {
	var audioSeconds float64

	cmd := &cobra.Command{
		Use:         "inspect <srt-file>",
		Short:       "Parse an SRT file and report format issues",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			entries, err := subtitles.ParseSRT(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					fmt.Sprintf("%d", entry.Index),
					subtitles.FormatTimestamp(entry.Start),
					subtitles.FormatTimestamp(entry.End),
					truncate(entry.Text, 60),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))

			issues := subtitles.Validate(path, audioSeconds)
			if len(issues) == 0 {
				fmt.Fprintf(out, "%d entries, no issues found\n", len(entries))
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(out, "Issue: %s\n", issue)
			}
			return fmt.Errorf("%d issue(s) found in %s", len(issues), path)
		},
	}

	cmd.Flags().Float64Var(&audioSeconds, "audio-seconds", 0, "Expected audio duration for alignment checking")
	return cmd
}
