package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/migrate"
	"gloss/internal/records"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "migrate <old-corpus> <new-corpus>",
		Short: "Carry translations from an old corpus onto a new extraction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldEntries, err := records.Load(args[0])
			if err != nil {
				return fmt.Errorf("load old corpus: %w", err)
			}
			newEntries, err := records.Load(args[1])
			if err != nil {
				return fmt.Errorf("load new corpus: %w", err)
			}

			merged, report := migrate.Merge(oldEntries, newEntries, ctx.ensureLogger())

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = args[1]
			}
			if err := records.Save(target, merged); err != nil {
				return fmt.Errorf("save merged corpus: %w", err)
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"output":           target,
					"merged":           report.Merged,
					"duplicate_keys":   len(report.DuplicateOldKeys),
					"identity_clashes": len(report.DuplicateNewIdentities),
					"unmatched_old":    len(report.UnmatchedOld),
					"unmatched_new":    len(report.UnmatchedNew),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Merged %d translations into %s\n", report.Merged, target)
			if len(report.DuplicateOldKeys) > 0 {
				fmt.Fprintf(out, "%d duplicate old keys (first occurrence kept)\n", len(report.DuplicateOldKeys))
			}
			if len(report.DuplicateNewIdentities) > 0 {
				fmt.Fprintln(out, renderClashTable(report.DuplicateNewIdentities))
			}
			if len(report.UnmatchedOld) > 0 {
				fmt.Fprintf(out, "%d old entries had no match in the new corpus\n", len(report.UnmatchedOld))
			}
			if len(report.UnmatchedNew) > 0 {
				fmt.Fprintf(out, "%d new entries remain untranslated\n", len(report.UnmatchedNew))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Merged corpus output path (defaults to the new corpus)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON summary")
	return cmd
}

func renderClashTable(clashes []migrate.IdentityClash) string {
	rows := make([][]string, 0, len(clashes))
	for _, clash := range clashes {
		rows = append(rows, []string{
			clash.Identity,
			strconv.Itoa(len(clash.Originals)),
			strings.Join(clash.Originals, "; "),
		})
	}
	return renderTable(
		[]string{"Identity", "Count", "Originals"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	)
}
