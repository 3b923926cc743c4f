package body

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type CreateAPI func(ctx context.Context, body Body) (Body, error)

func Create(getClient client.ClientProvider) CreateAPI {
	return func(ctx context.Context, body Body) (Body, error) {
		c, err := getClient()
		if err != nil {
			return Body{}, errors.WithMessage(err, "failed to connect to api")
		}
		var created Body
		err = c.Do(ctx, client.Request{
			Method:       http.MethodPost,
			Path:         "/bodies",
			Body:         map[string]Body{"body": body},
			ResourceType: resourceType,
		}, &created)
		if err != nil {
			return Body{}, errors.WithMessagef(err, "create body %q request failed", body.Name)
		}
		return created, nil
	}
}
