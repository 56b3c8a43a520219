// Package cli provides the zonediff command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"go-zone-diff/internal/config"
	"go-zone-diff/internal/logger"
)

// Version is set at build time.
var Version = "0.1.0"

type rootOptions struct {
	verbose bool
	cfg     *config.Config
}

// NewRootCmd builds the zonediff command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "zonediff",
		Short: "Compare two screenshot folders zone by zone",
		Long: `Zonediff pairs the screenshots of two folders (for example before and
after a build) by subdirectory and file name, reports the percentage of
changed pixels inside each configured zone and writes a diff image that
highlights every changed pixel in red.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logger.SetLevel(cfg.LogLevel)
			if opts.verbose {
				logger.SetLevel("debug")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newZonesCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
