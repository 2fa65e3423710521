package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/monarchize-dev/monarchize/internal/config"
	"github.com/monarchize-dev/monarchize/internal/convert"
)

func newConvertCommand() *cobra.Command {
	var fromDate string
	var toDate string
	var accountLabel string
	var configPath string

	cmd := &cobra.Command{
		Use:   "convert <input.csv>... <output.csv>",
		Short: "Convert one or more card CSV exports into a single Monarch import CSV",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := convertOptions{
				fromDate:     fromDate,
				toDate:       toDate,
				accountLabel: accountLabel,
				configPath:   configPath,
			}
			inputs := args[:len(args)-1]
			output := args[len(args)-1]
			return runConvert(cmd.OutOrStdout(), inputs, output, opts)
		},
	}

	cmd.Flags().StringVar(&fromDate, "from-date", "", "start date (inclusive), YYYY-MM-DD; to-date defaults to today when omitted")
	cmd.Flags().StringVar(&toDate, "to-date", "", "end date (inclusive), YYYY-MM-DD")
	cmd.Flags().StringVar(&accountLabel, "account-label", "", "account label for portal exports (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to monarchize.yaml")

	return cmd
}

type convertOptions struct {
	fromDate     string
	toDate       string
	accountLabel string
	configPath   string
}

// runConvert validates the invocation, runs the pipeline, and prints the
// per-file and total reports. Usage errors return before any file I/O.
func runConvert(out io.Writer, inputs []string, output string, opts convertOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	label := opts.accountLabel
	if label == "" {
		label = cfg.Account.PortalLabel
	}
	if label == "" {
		label = config.DefaultPortalLabel
	}

	fromStr := opts.fromDate
	if fromStr == "" {
		fromStr = cfg.Filter.FromDate
	}
	toStr := opts.toDate
	if toStr == "" {
		toStr = cfg.Filter.ToDate
	}

	window := convert.Window{}
	if window.From, err = parseBound("from-date", fromStr); err != nil {
		return err
	}
	if window.To, err = parseBound("to-date", toStr); err != nil {
		return err
	}

	n := convert.NewNormalizer(label, window)
	sum, err := convert.Run(inputs, output, n)
	if err != nil {
		return err
	}

	report(out, sum, output, n.Window())
	return nil
}

// loadConfig reads the named config, or monarchize.yaml in the working
// directory when none was given. A missing default config is not an error.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(config.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(""), nil
	}
	return cfg, err
}

// parseBound parses an optional date-bound flag. A malformed bound is a
// usage error, fatal before any input is opened.
func parseBound(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := convert.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD (e.g. 2025-05-01)", name, s)
	}
	return &t, nil
}

const dateFormat = "2006-01-02"

func report(out io.Writer, sum convert.Summary, output string, w convert.Window) {
	for _, fr := range sum.Files {
		if fr.Skipped {
			fmt.Fprintf(out, "warning: skipping %s: %s\n", fr.Name, fr.SkipReason)
			continue
		}
		fmt.Fprintf(out, "%s: [%s] read %d, wrote %d, filtered %d (unparsed dates: %d)\n",
			fr.Name, fr.Tag, fr.Read, fr.Written, fr.Filtered, fr.UnparsedDates)
	}

	if !sum.OutputWritten {
		fmt.Fprintln(out, "no rows to write; check inputs and date filters")
		return
	}

	fmt.Fprintf(out, "TOTAL: read %d, wrote %d rows -> %s\n", sum.Read, sum.Written, output)
	if w.Active() {
		fmt.Fprintf(out, "filtered by date: %d (unparsed among them: %d)\n", sum.Filtered, sum.UnparsedDates)
		fmt.Fprintf(out, "date window: %s to %s\n", boundString(w.From), boundString(w.To))
	}
}

func boundString(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}
