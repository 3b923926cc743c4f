package member

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

type ListAPI func(ctx context.Context, bodyId int, paging client.Paging) ([]Membership, error)

func List(getClient client.ClientProvider) ListAPI {
	return func(ctx context.Context, bodyId int, paging client.Paging) ([]Membership, error) {
		c, err := getClient()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to connect to api")
		}
		memberships := []Membership{}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodGet,
			Path:         membersPath(bodyId),
			Query:        paging.Values(),
			ResourceType: "body",
			ResourceId:   idString(bodyId),
		}, &memberships)
		if err != nil {
			return nil, errors.WithMessage(err, "list members request failed")
		}
		return memberships, nil
	}
}
