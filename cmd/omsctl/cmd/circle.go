package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/omsctl"
	"github.com/oms-project/omsctl/pkg/client/circle"
)

func circleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circle",
		Short: "Manage the circles of a body",
	}
	cmd.AddCommand(
		circleCreateCmdWithApp(omsctl.New()),
		circleSearchCmdWithApp(omsctl.New()),
	)
	return cmd
}

func circleCreateCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <body-id>",
		Short: "Create a circle bound to a body",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			name, err := cmd.Flags().GetString("name")
			if err != nil {
				return errors.Errorf("error reading name: %s", err)
			}
			description, err := cmd.Flags().GetString("description")
			if err != nil {
				return errors.Errorf("error reading description: %s", err)
			}
			joinable, err := cmd.Flags().GetBool("joinable")
			if err != nil {
				return errors.Errorf("error reading joinable: %s", err)
			}
			return a.CreateCircle(commandContext(cmd), bodyId, circle.Circle{
				Name:        name,
				Description: description,
				Joinable:    joinable,
			})
		},
	}
	cmd.Flags().String("name", "", "name of the circle")
	cmd.Flags().String("description", "", "free text description")
	cmd.Flags().Bool("joinable", false, "whether members may join the circle without approval")
	cmd.MarkFlagRequired("name")
	return cmd
}

func circleSearchCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <body-id>",
		Short: "Interactively search the circles of a body",
		Long: `Interactively search the circles of a body.

Every line read from standard input is taken as the current content of a search box.
Queries are sent once the input has been unchanged for the quiet period, and only
the candidates for the latest input are printed. End input with Ctrl-D.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			quietPeriod, err := cmd.Flags().GetDuration("quiet-period")
			if err != nil {
				return errors.Errorf("error reading quiet-period: %s", err)
			}
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return errors.Errorf("error reading limit: %s", err)
			}
			cacheSize, err := cmd.Flags().GetInt("cache-size")
			if err != nil {
				return errors.Errorf("error reading cache-size: %s", err)
			}
			return a.SearchCircles(commandContext(cmd), bodyId, omsctl.SearchOptions{
				QuietPeriod: quietPeriod,
				Limit:       limit,
				CacheSize:   cacheSize,
			})
		},
	}
	cmd.Flags().Duration("quiet-period", 300*time.Millisecond, "how long input has to stay unchanged before searching")
	cmd.Flags().Int("limit", circle.SearchLimit, "maximum number of candidates shown")
	cmd.Flags().Int("cache-size", 64, "number of search results remembered, 0 to disable")
	return cmd
}
