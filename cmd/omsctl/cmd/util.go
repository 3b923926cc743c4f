package cmd

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/internal/common/omserrors"
	"github.com/oms-project/omsctl/pkg/client"
)

// commandContext returns the context of a running command, annotated with the command's path.
func commandContext(cmd *cobra.Command) *omscontext.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return omscontext.New(ctx, log.WithField("command", cmd.CommandPath()))
}

func parseId(name string, value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, errors.WithStack(&omserrors.ErrInvalidArgument{
			Name:    name,
			Value:   value,
			Message: "must be a positive integer",
		})
	}
	return id, nil
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", "only show entries matching query")
	cmd.Flags().Int("limit", 30, "maximum number of entries shown")
	cmd.Flags().Int("offset", 0, "number of entries skipped")
}

func pagingFromFlags(cmd *cobra.Command) (client.Paging, error) {
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return client.Paging{}, errors.Errorf("error reading query: %s", err)
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return client.Paging{}, errors.Errorf("error reading limit: %s", err)
	}
	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return client.Paging{}, errors.Errorf("error reading offset: %s", err)
	}
	return client.Paging{Query: query, Limit: limit, Offset: offset}, nil
}
