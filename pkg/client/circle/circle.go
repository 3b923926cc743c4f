package circle

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

// SearchLimit is the number of candidates offered while typing.
const SearchLimit = 8

type Circle struct {
	Id             int    `json:"id,omitempty"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Joinable       bool   `json:"joinable"`
	BodyId         int    `json:"body_id,omitempty"`
	ParentCircleId *int   `json:"parent_circle_id,omitempty"`
}

func circlesPath(bodyId int) string {
	return fmt.Sprintf("/bodies/%d/circles", bodyId)
}

type CreateAPI func(ctx context.Context, bodyId int, c Circle) (Circle, error)

func Create(getClient client.ClientProvider) CreateAPI {
	return func(ctx context.Context, bodyId int, c Circle) (Circle, error) {
		rc, err := getClient()
		if err != nil {
			return Circle{}, errors.WithMessage(err, "failed to connect to api")
		}
		var created Circle
		err = rc.Do(ctx, client.Request{
			Method:       http.MethodPost,
			Path:         circlesPath(bodyId),
			Body:         map[string]Circle{"circle": c},
			ResourceType: "body",
			ResourceId:   strconv.Itoa(bodyId),
		}, &created)
		if err != nil {
			return Circle{}, errors.WithMessagef(err, "create circle %q request failed", c.Name)
		}
		return created, nil
	}
}

// SearchAPI returns the circles of a body whose name matches query. A response without data is an
// empty result, never an error.
type SearchAPI func(ctx context.Context, bodyId int, query string, limit int) ([]Circle, error)

func Search(getClient client.ClientProvider) SearchAPI {
	return func(ctx context.Context, bodyId int, query string, limit int) ([]Circle, error) {
		c, err := getClient()
		if err != nil {
			return nil, errors.WithMessage(err, "failed to connect to api")
		}
		if limit <= 0 {
			limit = SearchLimit
		}
		circles := []Circle{}
		err = c.Do(ctx, client.Request{
			Method: http.MethodGet,
			Path:   circlesPath(bodyId),
			Query: map[string][]string{
				"limit":  {strconv.Itoa(limit)},
				"offset": {"0"},
				"query":  {query},
			},
			ResourceType: "body",
			ResourceId:   strconv.Itoa(bodyId),
		}, &circles)
		if err != nil {
			return nil, errors.WithMessage(err, "search circles request failed")
		}
		return circles, nil
	}
}
