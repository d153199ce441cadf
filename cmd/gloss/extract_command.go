package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/extraction"
	"gloss/internal/processors"
	"gloss/internal/records"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract <container>",
		Short: "Extract translatable text from an asset container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := memgraph.Load(args[0])
			if err != nil {
				return fmt.Errorf("load container: %w", err)
			}

			result := extraction.Run(container, processors.NewRegistry(), ctx.ensureLogger())

			target := strings.TrimSpace(outputPath)
			if target == "" {
				base := filepath.Base(args[0])
				target = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
			}
			if err := records.Save(target, result.Entries); err != nil {
				return fmt.Errorf("save corpus: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"container":  container.Name(),
					"output":     target,
					"entries":    len(result.Entries),
					"processed":  result.Processed,
					"failed":     result.Failed,
					"collisions": len(result.Collisions),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracted %d entries from %s to %s\n", len(result.Entries), container.Name(), target)
			if result.Failed > 0 {
				fmt.Fprintf(out, "%d objects could not be read\n", result.Failed)
			}
			if len(result.Collisions) > 0 {
				fmt.Fprintln(out, renderCollisionTable(result.Collisions))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Corpus output path (defaults to <container>.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON summary")
	return cmd
}

func renderCollisionTable(collisions []extraction.Collision) string {
	rows := make([][]string, 0, len(collisions))
	for _, collision := range collisions {
		contexts := make([]string, 0, len(collision.Contexts))
		for _, context := range collision.Contexts {
			contexts = append(contexts, strings.ReplaceAll(context, "\n", " "))
		}
		rows = append(rows, []string{
			shortKey(collision.Key),
			strconv.Itoa(len(collision.Contexts)),
			strings.Join(contexts, "; "),
		})
	}
	return renderTable(
		[]string{"Key", "Count", "Contexts"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
