package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	zoneconfig "go-zone-diff/pkg/config"
)

func newZonesCmd(root *rootOptions) *cobra.Command {
	var (
		zonesFile string
		asYAML    bool
	)

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Show the configured zones",
		Long: `Show the zones every comparison measures, from --zones, ZONES_FILE
or the built-in defaults.

Examples:
  zonediff zones
  zonediff zones --zones zones.yaml
  zonediff zones --yaml > zones.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.cfg.ZonesFile
			if zonesFile != "" {
				path = zonesFile
			}
			set, err := zoneconfig.LoadZones(path)
			if err != nil {
				return err
			}

			if asYAML {
				data, err := zoneconfig.MarshalZones(set)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderZones(set))
			return nil
		},
	}

	cmd.Flags().StringVarP(&zonesFile, "zones", "z", "", "zone configuration YAML file")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as a zone configuration file")

	return cmd
}
