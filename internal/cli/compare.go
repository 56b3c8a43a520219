package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go-zone-diff/internal/analyzer"
	"go-zone-diff/internal/container"
	"go-zone-diff/internal/service"
)

type compareOptions struct {
	out         string
	report      string
	zones       string
	opacity     float64
	workers     int
	base        string
	preview     bool
	history     string
	placeholder bool
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare LEFT RIGHT",
		Short: "Compare two screenshot folders",
		Long: `Compare every screenshot under LEFT with its counterpart under RIGHT.

Files are paired by subdirectory and file name. Files without a counterpart
are reported as MISSING. One diff image is written per compared pair.

Examples:
  zonediff compare builds/1.0 builds/1.1
  zonediff compare old new --out diffs --report diffs/Zone.csv
  zonediff compare old new --zones zones.yaml --workers 4 --preview`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, root, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory for diff images (default from OUTPUT_DIR)")
	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "report file, .csv or .json (default from REPORT_PATH)")
	cmd.Flags().StringVarP(&opts.zones, "zones", "z", "", "zone configuration YAML file")
	cmd.Flags().Float64Var(&opts.opacity, "opacity", -1, "opacity of the background image in [0,1]")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "pairs compared concurrently")
	cmd.Flags().StringVar(&opts.base, "base", "", "diff image base name")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "also write a preview of the zones")
	cmd.Flags().StringVar(&opts.history, "history", "", "SQLite database recording the run")
	cmd.Flags().BoolVar(&opts.placeholder, "placeholder", false, "compare unmatched files against a blank image")

	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions, left, right string) error {
	cfg := *root.cfg
	if opts.out != "" {
		cfg.OutputDir = opts.out
	}
	if opts.report != "" {
		cfg.ReportPath = opts.report
	}
	if opts.zones != "" {
		cfg.ZonesFile = opts.zones
	}
	if cmd.Flags().Changed("opacity") {
		cfg.Opacity = opts.opacity
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.base != "" {
		cfg.DiffBaseName = opts.base
	}
	if opts.history != "" {
		cfg.HistoryDB = opts.history
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := container.NewContainer(&cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	compareOpts := analyzer.DefaultOptions().
		WithOpacity(cfg.Opacity).
		WithWorkers(cfg.Workers)
	if opts.placeholder {
		compareOpts = compareOpts.WithMissingPlaceholder()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := c.Service().Compare(ctx, service.CompareRequest{
		LeftDir:    left,
		RightDir:   right,
		OutputDir:  cfg.OutputDir,
		ReportPath: cfg.ReportPath,
		Options:    compareOpts,
		Preview:    opts.preview,
	})
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderReport(report, cfg.ReportPath))
	return nil
}
