package body

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type ListAPI func(ctx context.Context, paging client.Paging) ([]Body, error)

func List(getClient client.ClientProvider) ListAPI {
	return func(ctx context.Context, paging client.Paging) ([]Body, error) {
		c, err := getClient()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to connect to api")
		}
		bodies := []Body{}
		err = c.Do(ctx, client.Request{
			Method: http.MethodGet,
			Path:   "/bodies",
			Query:  paging.Values(),
		}, &bodies)
		if err != nil {
			return nil, errors.WithMessage(err, "list bodies request failed")
		}
		return bodies, nil
	}
}
