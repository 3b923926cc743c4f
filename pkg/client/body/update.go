package body

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type UpdateAPI func(ctx context.Context, body Body) (Body, error)

func Update(getClient client.ClientProvider) UpdateAPI {
	return func(ctx context.Context, body Body) (Body, error) {
		c, err := getClient()
		if err != nil {
			return Body{}, errors.WithMessage(err, "failed to connect to api")
		}
		var updated Body
		err = c.Do(ctx, client.Request{
			Method:       http.MethodPut,
			Path:         path(body.Id),
			Body:         map[string]Body{"body": body},
			ResourceType: resourceType,
			ResourceId:   idString(body.Id),
		}, &updated)
		if err != nil {
			return Body{}, errors.WithMessage(err, "update body request failed")
		}
		return updated, nil
	}
}
