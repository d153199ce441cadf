package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/charset"
)

func newCharsetCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var symbolsPath string

	cmd := &cobra.Command{
		Use:   "charset <corpus-dir>...",
		Short: "Collect the character set used by translated text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			symbols := strings.TrimSpace(symbolsPath)
			if symbols == "" {
				symbols = cfg.Charset.SymbolsFile
			}

			result, err := charset.Collect(args, symbols, outputPath, ctx.ensureLogger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Collected %d characters from %d corpora into %s\n",
				result.Runes, result.Files, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Character set output file")
	cmd.Flags().StringVar(&symbolsPath, "symbols", "", "Extra symbols file (overrides config)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
