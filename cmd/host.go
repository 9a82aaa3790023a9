// host.go implements the "livecube host" command: a simulated in-process
// command endpoint for developing and testing the chain without a
// running Fusion session. The real endpoint lives inside Fusion as an
// add-in; this one serves the same route on the same port with a
// Modeler that only logs.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/livecube/livecube/internal/host"
)

func newHostCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Start a simulated command endpoint",
		Long: `Start an HTTP server that mimics the Fusion add-in's command endpoint
(GET /cmd?edge=N). No geometry is created; requests are logged and
answered with the confirmation the real add-in would return.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen == "" {
				listen = cfg.Host.Listen
			}
			return host.NewServer(host.SimModeler{}).Run(listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")

	return cmd
}
