// root.go defines the root command and CLI execution entry point.
//
// Every subcommand is a long-running server, so there is no shared
// service lifecycle here; each command loads configuration and blocks in
// its own Run.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/livecube/livecube/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "livecube",
	Short: "Fusion cube generation over MCP",
	Long: `livecube connects AI assistants to Fusion 360 cube generation.

Three components form the chain:
  host    simulated in-process command endpoint (stands in for the Fusion add-in)
  bridge  stateless forwarder between the MCP server and the command endpoint
  serve   MCP server exposing the generate_cube tool`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "livecube.yaml", "path to YAML config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBridgeCmd())
	rootCmd.AddCommand(newHostCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadConfig resolves configuration for a command run.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// Execute runs the root command. Exit code 1 indicates error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
