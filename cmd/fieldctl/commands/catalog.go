package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrox/fieldops/internal/probe"
)

// CatalogCommands returns the catalog command group.
func CatalogCommands() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Adapter catalog commands",
		Long: `Adapter catalog commands.

Available commands:
  show      - Print the effective catalog as YAML
  validate  - Check a catalog file`,
	}

	catalogCmd.AddCommand(showCatalogCmd())
	catalogCmd.AddCommand(validateCatalogCmd())
	return catalogCmd
}

func showCatalogCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective catalog as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := probe.LoadCatalog(file)
			if err != nil {
				return err
			}
			data, err := cat.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog file (defaults to the built-in catalog)")
	return cmd
}

func validateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := probe.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			if err := cat.Require(
				probe.DamageTable, probe.DamageBucket,
				probe.MaintenanceTable, probe.MaintenanceBucket,
				probe.OrderTable,
				probe.FuelTable, probe.FuelBucket,
			); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d resources OK\n", args[0], len(cat.Resources))
			return nil
		},
	}
}
