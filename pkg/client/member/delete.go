package member

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type DeleteAPI func(ctx context.Context, bodyId int, membershipId int) error

func Delete(getClient client.ClientProvider) DeleteAPI {
	return func(ctx context.Context, bodyId int, membershipId int) error {
		c, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodDelete,
			Path:         membershipPath(bodyId, membershipId),
			ResourceType: resourceType,
			ResourceId:   idString(membershipId),
		}, nil)
		if err != nil {
			return errors.WithMessage(err, "delete membership request failed")
		}
		return nil
	}
}
