package body

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

// DeleteAPI deletes a body together with all circles bound to it.
type DeleteAPI func(ctx context.Context, id int) error

func Delete(getClient client.ClientProvider) DeleteAPI {
	return func(ctx context.Context, id int) error {
		c, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodDelete,
			Path:         path(id),
			ResourceType: resourceType,
			ResourceId:   idString(id),
		}, nil)
		if err != nil {
			return errors.WithMessage(err, "delete body request failed")
		}
		return nil
	}
}
