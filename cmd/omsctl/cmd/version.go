package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/omsctl"
)

func versionCmd() *cobra.Command {
	a := omsctl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
