package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/omsctl"
	"github.com/oms-project/omsctl/pkg/client/member"
)

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the members of a body",
	}
	cmd.AddCommand(
		memberListCmdWithApp(omsctl.New()),
		memberCreateCmdWithApp(omsctl.New()),
		memberUpdateCmdWithApp(omsctl.New()),
		memberDeleteCmdWithApp(omsctl.New()),
	)
	return cmd
}

func memberListCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <body-id>",
		Short: "List the members of a body",
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
			return a.ListMembers(commandContext(cmd), bodyId, paging)
		},
	}
	addPagingFlags(cmd)
	return cmd
}

func memberCreateCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <body-id>",
		Short: "Create a user and make it a member of a body",
		Long: `Create a user and make it a member of a body.

The new user receives a mail with instructions on how to log in.
To create many members at once, use "omsctl import members".`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			c := member.Candidate{}
			for flag, field := range map[string]*string{
				"first-name":    &c.FirstName,
				"last-name":     &c.LastName,
				"email":         &c.Email,
				"username":      &c.Username,
				"date-of-birth": &c.DateOfBirth,
				"gender":        &c.Gender,
				"phone":         &c.Phone,
				"address":       &c.Address,
				"university":    &c.University,
				"comment":       &c.Comment,
			} {
				if *field, err = cmd.Flags().GetString(flag); err != nil {
					return errors.Errorf("error reading %s: %s", flag, err)
				}
			}
			return a.CreateMember(commandContext(cmd), bodyId, c)
		},
	}
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("email", "", "email address, also used to log in")
	cmd.Flags().String("username", "", "username")
	cmd.Flags().String("date-of-birth", "", "date of birth, YYYY-MM-DD")
	cmd.Flags().String("gender", "", "gender")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("address", "", "postal address")
	cmd.Flags().String("university", "", "university")
	cmd.Flags().String("comment", "", "comment on the membership")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func memberUpdateCmdWithApp(a *omsctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <body-id> <membership-id>",
		Short: "Update a membership",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			membershipId, err := parseId("membership-id", args[1])
			if err != nil {
				return err
			}
			comment, err := cmd.Flags().GetString("comment")
			if err != nil {
				return errors.Errorf("error reading comment: %s", err)
			}
			fee, err := cmd.Flags().GetString("fee")
			if err != nil {
				return errors.Errorf("error reading fee: %s", err)
			}
			return a.UpdateMembership(commandContext(cmd), bodyId, member.Membership{
				Id:      membershipId,
				Comment: comment,
				Fee:     fee,
			})
		},
	}
	cmd.Flags().String("comment", "", "comment on the membership, e.g. the member's role")
	cmd.Flags().String("fee", "", "membership fee paid")
	return cmd
}

func memberDeleteCmdWithApp(a *omsctl.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <body-id> <membership-id>",
		Short: "Remove a member from a body",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			membershipId, err := parseId("membership-id", args[1])
			if err != nil {
				return err
			}
			return a.DeleteMembership(commandContext(cmd), bodyId, membershipId)
		},
	}
}
