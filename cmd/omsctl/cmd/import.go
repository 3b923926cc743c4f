package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/omsctl"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk import bodies or members from a JSON or YAML file",
		Long: `Bulk import bodies or members from a JSON or YAML file.

The file holds a list of records. All records are submitted at once; a record that
fails does not stop the others. A summary is printed when every record has
succeeded or failed, and the command succeeds even if some records failed.`,
	}
	cmd.AddCommand(
		importBodiesCmdWithApp(omsctl.New()),
		importMembersCmdWithApp(omsctl.New()),
	)
	return cmd
}

func addImportFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().Bool("verbose", false, "print the error of every failed record")
	cmd.Flags().Bool("print-metrics", false, "print import metrics in the Prometheus text format")
	return cmd
}

func importOptionsFromFlags(cmd *cobra.Command) (omsctl.ImportOptions, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return omsctl.ImportOptions{}, errors.Errorf("error reading verbose: %s", err)
	}
	printMetrics, err := cmd.Flags().GetBool("print-metrics")
	if err != nil {
		return omsctl.ImportOptions{}, errors.Errorf("error reading print-metrics: %s", err)
	}
	return omsctl.ImportOptions{Verbose: verbose, PrintMetrics: printMetrics}, nil
}

func importBodiesCmdWithApp(a *omsctl.App) *cobra.Command {
	return addImportFlags(&cobra.Command{
		Use:   "bodies <file>",
		Short: "Create every body listed in a file",
		Example: `  omsctl import bodies bodies.yaml

bodies.yaml:
- name: AEGEE-Delft
  legacy_key: DEL
- name: AEGEE-Eindhoven
  legacy_key: EIN`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := importOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.ImportBodies(commandContext(cmd), args[0], opts)
		},
	})
}

func importMembersCmdWithApp(a *omsctl.App) *cobra.Command {
	return addImportFlags(&cobra.Command{
		Use:   "members <body-id> <file>",
		Short: "Create a user and membership of a body for every person listed in a file",
		Example: `  omsctl import members 42 members.json

members.json:
[{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.org"}]`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			bodyId, err := parseId("body-id", args[0])
			if err != nil {
				return err
			}
			opts, err := importOptionsFromFlags(cmd)
			if err != nil {
				return err
			}
			return a.ImportMembers(commandContext(cmd), bodyId, args[1], opts)
		},
	})
}
