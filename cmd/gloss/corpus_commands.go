package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"gloss/internal/corpus"
	"gloss/internal/records"
)

func newCorpusCommand(ctx *commandContext) *cobra.Command {
	corpusCmd := &cobra.Command{
		Use:   "corpus",
		Short: "Translation-memory database utilities",
	}

	corpusCmd.AddCommand(newCorpusImportCommand(ctx))
	corpusCmd.AddCommand(newCorpusExportCommand(ctx))
	corpusCmd.AddCommand(newCorpusStatsCommand(ctx))

	return corpusCmd
}

func withStore(ctx *commandContext, fn func(*corpus.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := corpus.Open(cfg.Corpus.DatabasePath)
	if err != nil {
		return fmt.Errorf("open corpus database: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCorpusImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <corpus-file>...",
		Short: "Import corpus files into the translation-memory database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(store *corpus.Store) error {
				out := cmd.OutOrStdout()
				for _, path := range args {
					entries, err := records.Load(path)
					if err != nil {
						return fmt.Errorf("load corpus %s: %w", path, err)
					}
					count, err := store.Import(cmd.Context(), filepath.Base(path), entries)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %d entries from %s\n", count, path)
				}
				return nil
			})
		},
	}
}

func newCorpusExportCommand(ctx *commandContext) *cobra.Command {
	var source string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored entries back to a corpus file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(store *corpus.Store) error {
				entries, err := store.Export(cmd.Context(), source)
				if err != nil {
					return err
				}
				if err := records.Save(outputPath, entries); err != nil {
					return fmt.Errorf("save corpus: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Limit the export to one imported source")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Corpus output path")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newCorpusStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show translation-memory database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(store *corpus.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{
						"total":      stats.Total,
						"translated": stats.Translated,
						"sources":    stats.Sources,
					})
				}
				rows := [][]string{
					{"Entries", strconv.Itoa(stats.Total)},
					{"Translated", strconv.Itoa(stats.Translated)},
					{"Sources", strconv.Itoa(stats.Sources)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Metric", "Value"}, rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON statistics")
	return cmd
}
