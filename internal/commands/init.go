package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/monarchize-dev/monarchize/internal/config"
)

func newInitCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default monarchize.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, label)
		},
	}

	cmd.Flags().StringVar(&label, "account-label", "", "account label for portal exports")

	return cmd
}

func runInit(cmd *cobra.Command, dir, label string) error {
	path := filepath.Join(dir, config.DefaultFile)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := config.Save(path, config.Default(label)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
