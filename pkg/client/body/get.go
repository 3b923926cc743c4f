package body

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type GetAPI func(ctx context.Context, id int) (Body, error)

func Get(getClient client.ClientProvider) GetAPI {
	return func(ctx context.Context, id int) (Body, error) {
		c, err := getClient()
		if err != nil {
			return Body{}, errors.WithMessage(err, "failed to connect to api")
		}
		var body Body
		err = c.Do(ctx, client.Request{
			Method:       http.MethodGet,
			Path:         path(id),
			ResourceType: resourceType,
			ResourceId:   idString(id),
		}, &body)
		if err != nil {
			return Body{}, errors.WithMessage(err, "get body request failed")
		}
		return body, nil
	}
}
