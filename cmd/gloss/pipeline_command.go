package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gloss/internal/pipeline"
	"gloss/internal/services/paratranz"
)

func newPipelineCommand(ctx *commandContext) *cobra.Command {
	var oldCorpusDir string
	var fontDonor string
	var fontConfig string

	cmd := &cobra.Command{
		Use:     "pipeline <container>...",
		Aliases: []string{"run"},
		Short:   "Run the full localization pipeline over asset containers",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			var updater pipeline.Updater
			if oldCorpusDir != "" {
				client, err := paratranz.New(cfg.Update.Binary, cfg.Update.ProjectDir,
					cfg.Update.TimeoutSeconds, logger)
				if err != nil {
					return fmt.Errorf("configure update tool: %w", err)
				}
				updater = client
			}

			runner := pipeline.New(cfg, updater, logger)
			summary, err := runner.Run(cmd.Context(), pipeline.Options{
				Sources:      args,
				OldCorpusDir: oldCorpusDir,
				FontDonor:    fontDonor,
				FontConfig:   fontConfig,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s complete\n", summary.RunID)
			fmt.Fprintln(out, renderRunTable(summary.Containers))
			if summary.Fonts != nil {
				fmt.Fprintf(out, "Fonts: %d assets, %d textures, %d materials\n",
					summary.Fonts.FontAssets, summary.Fonts.Textures, summary.Fonts.Materials)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&oldCorpusDir, "old-corpus", "", "Directory with the previous run's corpora")
	cmd.Flags().StringVar(&fontDonor, "font-donor", "", "Donor container for font transplants")
	cmd.Flags().StringVar(&fontConfig, "font-mapping", "", "Id-mapping configuration for font transplants")
	return cmd
}

func renderRunTable(results []pipeline.ContainerResult) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.Source,
			strconv.Itoa(result.Extracted),
			strconv.Itoa(result.Applied),
			strconv.Itoa(result.Skipped),
			result.Patched,
		})
	}
	return renderTable(
		[]string{"Container", "Extracted", "Applied", "Skipped", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}
