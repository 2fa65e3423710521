package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monarchize-dev/monarchize/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "monarchize",
		Short:   "Convert credit-card CSV exports to Monarch Money import CSVs",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
