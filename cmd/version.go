package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livecube/livecube/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
