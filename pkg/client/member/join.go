package member

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

// JoinAPI asks for the current user to become a member of a body.
type JoinAPI func(ctx context.Context, bodyId int, motivation string) error

func Join(getClient client.ClientProvider) JoinAPI {
	return func(ctx context.Context, bodyId int, motivation string) error {
		c, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = c.Do(ctx, client.Request{
			Method: http.MethodPost,
			Path:   membersPath(bodyId),
			Body: map[string]interface{}{
				"join_request": map[string]string{"motivation": motivation},
			},
			ResourceType: "body",
			ResourceId:   idString(bodyId),
		}, nil)
		if err != nil {
			return errors.WithMessage(err, "join request failed")
		}
		return nil
	}
}
