package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oms-project/omsctl/internal/omsctl"
	"github.com/oms-project/omsctl/pkg/client/body"
)

func bodyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "body",
		Short: "Manage bodies, e.g. antennae, working groups and commissions",
	}
	cmd.AddCommand(
		bodyListCmdWithApp(omsctl.New()),
		bodyGetCmdWithApp(omsctl.New()),
		bodyCreateCmdWithApp(omsctl.New()),
		bodyUpdateCmdWithApp(omsctl.New()),
		bodyDeleteCmdWithApp(omsctl.New()),
		bodySetShadowCircleCmdWithApp(omsctl.New()),
		bodyJoinCmdWithApp(omsctl.New()),
	)
	return cmd
}

func bodyListCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bodies",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			paging, err := pagingFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.ListBodies(commandContext(cmd), paging)
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func bodyGetCmdWithApp(a *omsctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <body-id> [<body-id>...]",
		Short: "Print bodies as yaml",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, arg := range args {
				id, err := parseId("body-id", arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			return a.GetBodies(commandContext(cmd), ids)
		},
	}
}

// bodyFields are the editable fields of a body, shared by create and update.
var bodyFields = []struct {
	flag  string
	usage string
	field func(*body.Body) *string
}{
	{"name", "name of the body", func(b *body.Body) *string { return &b.Name }},
	{"legacy-key", "legacy key, e.g. DEL", func(b *body.Body) *string { return &b.LegacyKey }},
	{"abbreviation", "short name", func(b *body.Body) *string { return &b.Abbreviation }},
	{"description", "free text description", func(b *body.Body) *string { return &b.Description }},
	{"email", "contact email", func(b *body.Body) *string { return &b.Email }},
	{"phone", "contact phone number", func(b *body.Body) *string { return &b.Phone }},
	{"address", "postal address", func(b *body.Body) *string { return &b.Address }},
	{"type", "type of body, e.g. antenna or working group", func(b *body.Body) *string { return &b.Type }},
}

func addBodyFlags(flags *pflag.FlagSet) {
	for _, f := range bodyFields {
		flags.String(f.flag, "", f.usage)
	}
}

// applyBodyFlags copies every flag the user set into b. Unset flags leave b unchanged.
func applyBodyFlags(flags *pflag.FlagSet, b *body.Body) error {
	for _, f := range bodyFields {
		if !flags.Changed(f.flag) {
			continue
		}
		value, err := flags.GetString(f.flag)
		if err != nil {
			return errors.Errorf("error reading %s: %s", f.flag, err)
		}
		*f.field(b) = value
	}
	return nil
}

func bodyCreateCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a body",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b := body.Body{}
			if err := applyBodyFlags(cmd.Flags(), &b); err != nil {
				return err
			}
			return a.CreateBody(commandContext(cmd), b)
		},
	}
	addBodyFlags(cmd.Flags())
	cmd.MarkFlagRequired("name")
	return cmd
}

func bodyUpdateCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <body-id>",
		Short: "Update fields of a body",
		Long:  "Update fields of a body. Only the fields given as flags are changed.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			return a.UpdateBody(commandContext(cmd), id, func(b *body.Body) error {
				return applyBodyFlags(cmd.Flags(), b)
			})
		},
	}
	addBodyFlags(cmd.Flags())
	return cmd
}

func bodyDeleteCmdWithApp(a *omsctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <body-id>",
		Short: "Delete a body and all circles bound to it",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			return a.DeleteBody(commandContext(cmd), id)
		},
	}
}

func bodySetShadowCircleCmdWithApp(a *omsctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-shadow-circle <body-id> <circle-id|->",
		Short: "Assign the circle mirroring the members of a body",
		Long: `Assign the circle mirroring the members of a body. Pass - as circle id to unassign it.

Use "omsctl circle search" to find the circle id.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			var circleId *int
			if args[1] != "-" {
				id, err := parseId("circle-id", args[1])
				if err != nil {
					return err
				}
				circleId = &id
			}
			return a.SetShadowCircle(commandContext(cmd), bodyId, circleId)
		},
	}
}

func bodyJoinCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <body-id>",
		Short: "Ask to become a member of a body",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			motivation, err := cmd.Flags().GetString("motivation")
			if err != nil {
				return errors.Errorf("error reading motivation: %s", err)
			}
			return a.JoinBody(commandContext(cmd), id, motivation)
		},
	}
	cmd.Flags().String("motivation", "", "why you want to join")
	return cmd
}
