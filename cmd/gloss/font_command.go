package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/assetgraph/memgraph"
	"gloss/internal/fileutil"
	"gloss/internal/fontadopt"
)

func newFontCommand(ctx *commandContext) *cobra.Command {
	var mappingPath string
	var outputPath string
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "font <target-container> <donor-container>",
		Short: "Transplant font assets, atlases, and materials between containers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := fontadopt.LoadConfig(mappingPath)
			if err != nil {
				return err
			}

			targetPath := args[0]
			if !inPlace {
				out := strings.TrimSpace(outputPath)
				if out == "" {
					return fmt.Errorf("either --output or --in-place is required")
				}
				if err := fileutil.CopyFileVerified(targetPath, out); err != nil {
					return fmt.Errorf("stage container copy: %w", err)
				}
				targetPath = out
			}

			target, err := memgraph.Load(targetPath)
			if err != nil {
				return fmt.Errorf("load target container: %w", err)
			}
			donor, err := memgraph.Load(args[1])
			if err != nil {
				return fmt.Errorf("load donor container: %w", err)
			}

			summary, err := fontadopt.Run(target, donor, cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}
			if err := target.WriteFile(targetPath); err != nil {
				return fmt.Errorf("write patched container: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"Transplanted %d font assets, %d textures, %d materials into %s\n",
				summary.FontAssets, summary.Textures, summary.Materials, targetPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mappingPath, "mapping", "m", "", "Path to the id-mapping configuration")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Patched container output path")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Patch the target container in place")
	_ = cmd.MarkFlagRequired("mapping")
	return cmd
}
