package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/omsctl"
)

func joinRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "joinrequest",
		Aliases: []string{"jr"},
		Short:   "Review requests to join a body",
	}
	cmd.AddCommand(
		joinRequestListCmdWithApp(omsctl.New()),
		joinRequestProcessCmdWithApp(omsctl.New(), true),
		joinRequestProcessCmdWithApp(omsctl.New(), false),
	)
	return cmd
}

func joinRequestListCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <body-id>",
		Short: "List pending join requests of a body",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			paging, err := pagingFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.ListJoinRequests(commandContext(cmd), bodyId, paging)
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func joinRequestProcessCmdWithApp(a *omsctl.App, approve bool) *cobra.Command {
	use, short := "reject", "Reject a join request"
	if approve {
		use, short = "approve", "Approve a join request, making its user a member"
	}
	return &cobra.Command{
		Use:   use + " <body-id> <join-request-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			joinRequestId, err := parseId("join-request-id", args[1])
			if err != nil {
				return err
			}
			return a.ProcessJoinRequest(commandContext(cmd), bodyId, joinRequestId, approve)
		},
	}
}
