package member

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type UpdateAPI func(ctx context.Context, bodyId int, m Membership) error

func Update(getClient client.ClientProvider) UpdateAPI {
	return func(ctx context.Context, bodyId int, m Membership) error {
		c, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodPut,
			Path:         membershipPath(bodyId, m.Id),
			Body:         map[string]Membership{"body_membership": m},
			ResourceType: resourceType,
			ResourceId:   idString(m.Id),
		}, nil)
		if err != nil {
			return errors.WithMessage(err, "update membership request failed")
		}
		return nil
	}
}
