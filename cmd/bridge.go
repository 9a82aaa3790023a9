// bridge.go implements the "livecube bridge" command: the stateless
// intermediary between the MCP server and the in-process command
// endpoint.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/livecube/livecube/internal/bridge"
)

func newBridgeCmd() *cobra.Command {
	var (
		listen  string
		hostURL string
	)

	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Start the bridge server",
		Long: `Start the intermediary HTTP server that forwards cube creation
requests to the command endpoint running inside Fusion.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Bridge.Listen
			}
			if hostURL == "" {
				hostURL = cfg.Bridge.HostURL
			}
			return bridge.NewServer(hostURL).Run(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	cmd.Flags().StringVar(&hostURL, "host-url", "", "command endpoint base URL (default from config)")

	return cmd
}
