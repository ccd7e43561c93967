package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"subforge/internal/subtitles"
	"subforge/internal/textutil"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var maxChars int

	cmd := &cobra.Command{
		Use:   "plan [script-file]",
		Short: "Show how a script would be chunked without synthesizing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, _, err := readScript(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			budget := maxChars
			if budget <= 0 {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				budget = cfg.Subtitles.MaxChunkChars
			}

			text := textutil.FormatScript(script)
			chunks := subtitles.PlanChunks(text, budget)

			rows := make([][]string, 0, len(chunks))
			for _, chunk := range chunks {
				rows = append(rows, []string{
					fmt.Sprintf("%d", chunk.Index),
					fmt.Sprintf("%d", utf8.RuneCountInString(chunk.Text)),
					fmt.Sprintf("%d", len(textutil.SplitSentences(chunk.Text))),
					truncate(chunk.Text, 60),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Chunk", "Chars", "Units", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d chunks planned for %d characters of script\n",
				len(chunks), utf8.RuneCountInString(text))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Chunk character budget (defaults to configuration)")
	return cmd
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
