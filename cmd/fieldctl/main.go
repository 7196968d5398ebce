// Command fieldctl inspects the backend a gateway deployment talks to.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrox/fieldops/cmd/fieldctl/commands"
	"github.com/agrox/fieldops/internal/logger"
)

func main() {
	logger.Init("warn")
	logger.SetTextFormatter()

	rootCmd := &cobra.Command{
		Use:   "fieldctl",
		Short: "AGRO-X field operations admin tool",
		Long: `AGRO-X field operations admin tool

Commands for checking which tables and buckets a deployment resolves to,
working with the adapter catalog and minting local test tokens.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.ProbeCommand())
	rootCmd.AddCommand(commands.CatalogCommands())
	rootCmd.AddCommand(commands.TokenCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
