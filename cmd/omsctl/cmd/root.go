package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oms-project/omsctl/internal/common/logging"
	"github.com/oms-project/omsctl/internal/omsctl"
	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/body"
	"github.com/oms-project/omsctl/pkg/client/circle"
	"github.com/oms-project/omsctl/pkg/client/joinrequest"
	"github.com/oms-project/omsctl/pkg/client/member"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "omsctl",
		Short: "omsctl administers bodies, memberships and circles of an OMS deployment.",
		Long: `omsctl administers bodies, memberships and circles of an OMS deployment.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
omsUrl: https://my.oms.example/services/oms-core-elixir/api
token: <access token>
timeout: 10s

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.omsctl.yaml is used. Every setting can also be given
as an environment variable, e.g. OMSCTL_TOKEN.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.omsctl.yaml)")
	cmd.PersistentFlags().String("logLevel", "info", "log level, e.g. debug, info, warn")
	viper.BindPFlag("logLevel", cmd.PersistentFlags().Lookup("logLevel"))
	cmd.PersistentFlags().String("logFormat", logging.FormatPlain, "log format, one of plain, text, json")
	viper.BindPFlag("logFormat", cmd.PersistentFlags().Lookup("logFormat"))
	client.AddOmsApiConnectionCommandlineArgs(cmd)

	cmd.AddCommand(
		bodyCmd(),
		memberCmd(),
		joinRequestCmd(),
		circleCmd(),
		importCmd(),
		versionCmd(),
	)

	return cmd
}

// initParams loads configuration and wires the REST implementations of every API into params.
func initParams(cmd *cobra.Command, params *omsctl.Params) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return errors.WithStack(err)
	}
	if err := client.LoadCommandlineArgsFromConfigFile(configFile); err != nil {
		return err
	}
	if err := logging.Configure(logging.Config{
		Level:  viper.GetString("logLevel"),
		Format: viper.GetString("logFormat"),
	}, os.Stderr); err != nil {
		return err
	}

	details, err := client.ExtractCommandlineOmsApiConnectionDetails()
	if err != nil {
		return err
	}
	params.ApiConnectionDetails = details
	getClient := client.NewClientProvider(func() *client.ApiConnectionDetails { return params.ApiConnectionDetails })

	params.BodyAPI.Create = body.Create(getClient)
	params.BodyAPI.Get = body.Get(getClient)
	params.BodyAPI.Update = body.Update(getClient)
	params.BodyAPI.Delete = body.Delete(getClient)
	params.BodyAPI.List = body.List(getClient)

	params.MemberAPI.Create = member.Create(getClient)
	params.MemberAPI.Join = member.Join(getClient)
	params.MemberAPI.List = member.List(getClient)
	params.MemberAPI.Update = member.Update(getClient)
	params.MemberAPI.Delete = member.Delete(getClient)

	params.JoinRequestAPI.List = joinrequest.List(getClient)
	params.JoinRequestAPI.Process = joinrequest.Process(getClient)

	params.CircleAPI.Create = circle.Create(getClient)
	params.CircleAPI.Search = circle.Search(getClient)
	return nil
}
