package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON backs the --json flag shared by the reporting commands.
// Output goes to the command's stdout as indented JSON so it can be
// piped into jq or diffed between runs.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
