package joinrequest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/member"
)

// JoinRequest is a pending application of a user for membership in a body.
type JoinRequest struct {
	Id         int          `json:"id"`
	BodyId     int          `json:"body_id,omitempty"`
	UserId     int          `json:"user_id,omitempty"`
	Motivation string       `json:"motivation,omitempty"`
	Approved   bool         `json:"approved"`
	User       *member.User `json:"user,omitempty"`
}

type ListAPI func(ctx context.Context, bodyId int, paging client.Paging) ([]JoinRequest, error)

func List(getClient client.ClientProvider) ListAPI {
	return func(ctx context.Context, bodyId int, paging client.Paging) ([]JoinRequest, error) {
		c, err := getClient()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to connect to api")
		}
		requests := []JoinRequest{}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodGet,
			Path:         fmt.Sprintf("/bodies/%d/join_requests", bodyId),
			Query:        paging.Values(),
			ResourceType: "body",
			ResourceId:   strconv.Itoa(bodyId),
		}, &requests)
		if err != nil {
			return nil, errors.WithMessage(err, "list join requests request failed")
		}
		return requests, nil
	}
}

// ProcessAPI approves or rejects a join request.
type ProcessAPI func(ctx context.Context, bodyId int, joinRequestId int, approved bool) error

func Process(getClient client.ClientProvider) ProcessAPI {
	return func(ctx context.Context, bodyId int, joinRequestId int, approved bool) error {
		c, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = c.Do(ctx, client.Request{
			Method:       http.MethodPost,
			Path:         fmt.Sprintf("/bodies/%d/join_requests/%d", bodyId, joinRequestId),
			Body:         map[string]bool{"approved": approved},
			ResourceType: "join request",
			ResourceId:   strconv.Itoa(joinRequestId),
		}, nil)
		if err != nil {
			return errors.WithMessage(err, "process join request request failed")
		}
		return nil
	}
}
