package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subforge/internal/services"
	"subforge/internal/subtitles"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "generate [script-file]",
		Short: "Synthesize a script and build its subtitle file",
		Long: "Reads narration script text from a file (or stdin when no file is given),\n" +
			"synthesizes it chunk by chunk through the configured TTS command, reconciles\n" +
			"the returned timelines, and writes a single SRT file covering the whole script.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, source, err := readScript(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = defaultOutputPath(cfg.Paths.OutputDir, source)
			}

			svc, cleanup, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.Generate(cmd.Context(), subtitles.GenerateRequest{
				ScriptText: script,
				OutputPath: target,
			})
			if err != nil {
				if services.Retryable(err) {
					return fmt.Errorf("%w (rerunning may succeed; completed chunks are cached)", err)
				}
				return err
			}

			printGenerateResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination SRT file path")
	return cmd
}

// readScript returns the script text and a name used to derive the default
// output filename.
func readScript(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read script from stdin: %w", err)
		}
		return string(data), "narration", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read script file: %w", err)
	}
	base := filepath.Base(args[0])
	return string(data), strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func defaultOutputPath(outputDir, source string) string {
	return filepath.Join(outputDir, source+".srt")
}

func printGenerateResult(out io.Writer, result *subtitles.GenerateResult) {
	fmt.Fprintln(out, heading(out, "Subtitle generation summary"))
	rows := make([][]string, 0, len(result.Chunks))
	for _, chunk := range result.Chunks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", chunk.Index),
			fmt.Sprintf("%d", chunk.Chars),
			fmt.Sprintf("%d", chunk.Fragments),
			chunk.Source,
			yesNo(chunk.Cached),
			chunk.Duration.Round(timeRounding).String(),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chunk", "Chars", "Lines", "Source", "Cached", "Audio"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight},
	))

	fmt.Fprintf(out, "Wrote %d subtitle entries to %s (%s of audio)\n",
		result.EntryCount, result.SubtitlePath, result.TotalDuration.Round(timeRounding))
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "Validation: %s\n", issue)
	}
}
