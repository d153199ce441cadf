package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/application"
	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/fileutil"
	"gloss/internal/processors"
	"gloss/internal/records"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var inPlace bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "apply <container> <corpus>",
		Short: "Apply translated corpus entries to an asset container",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, corpusPath := args[0], args[1]

			entries, err := records.Load(corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			target := source
			if !inPlace {
				target = strings.TrimSpace(outputPath)
				if target == "" {
					return fmt.Errorf("either --output or --in-place is required")
				}
				if err := fileutil.CopyFileVerified(source, target); err != nil {
					return fmt.Errorf("stage container copy: %w", err)
				}
			}

			container, err := memgraph.Load(target)
			if err != nil {
				return fmt.Errorf("load container: %w", err)
			}

			result := application.Run(container, entries, processors.NewRegistry(), ctx.ensureLogger())
			if err := container.WriteFile(target); err != nil {
				return fmt.Errorf("write patched container: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"container": container.Name(),
					"output":    target,
					"applied":   result.Applied,
					"skipped":   result.SkippedRecords,
					"failed":    result.Failed,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Applied %d translation groups to %s\n", result.Applied, target)
			if result.SkippedRecords > 0 {
				fmt.Fprintf(out, "%d records skipped (untranslated or undecodable)\n", result.SkippedRecords)
			}
			if result.Failed > 0 {
				fmt.Fprintf(out, "%d groups failed\n", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Patched container output path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Patch the container file in place")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON summary")
	return cmd
}
