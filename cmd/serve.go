// serve.go implements the "livecube serve" command for MCP server
// operation. Unlike the other commands this is the one an MCP client
// launches directly: with the default stdio transport the client owns
// the process and speaks JSON-RPC over stdin/stdout.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/livecube/livecube/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var (
		mode      string
		transport string
		listen    string
		bridgeURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start an MCP (Model Context Protocol) server exposing the generate_cube tool.

Local mode forwards requests through the bridge server to a running
Fusion session. Cloud mode submits Design Automation workitems to APS
and requires APS_CLIENT_ID, APS_CLIENT_SECRET and FUSION_ACTIVITY_ID
(environment or keys.env).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if bridgeURL == "" {
				bridgeURL = cfg.MCP.BridgeURL
			}
			return mcp.Serve(mcp.Config{
				Mode:      mode,
				Transport: transport,
				Listen:    listen,
				BridgeURL: bridgeURL,
				APS:       cfg.APS,
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", mcp.ModeLocal, "execution path: local or cloud")
	cmd.Flags().StringVar(&transport, "transport", mcp.TransportStdio, "MCP transport: stdio or http")
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8081", "listen address for the http transport")
	cmd.Flags().StringVar(&bridgeURL, "bridge-url", "", "bridge server base URL (default from config)")

	return cmd
}
