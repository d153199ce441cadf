package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gloss/internal/services/paratranz"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var oldDir string
	var newDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge an old corpus with a new extraction via the update tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := paratranz.New(cfg.Update.Binary, cfg.Update.ProjectDir,
				cfg.Update.TimeoutSeconds, ctx.ensureLogger())
			if err != nil {
				return fmt.Errorf("configure update tool: %w", err)
			}
			if err := client.Update(cmd.Context(), oldDir, newDir, outputDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged corpora written to %s\n", outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&oldDir, "old", "", "Directory with the previous corpora")
	cmd.Flags().StringVar(&newDir, "new", "", "Directory with freshly extracted corpora")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for merged corpora")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
