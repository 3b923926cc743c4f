package member

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/pkg/client"
)

// CreateAPI creates a user from c and makes it a member of the body. The new user receives a mail
// with login instructions.
type CreateAPI func(ctx context.Context, bodyId int, c Candidate) error

func Create(getClient client.ClientProvider) CreateAPI {
	return func(ctx context.Context, bodyId int, c Candidate) error {
		rc, err := getClient()
		if err != nil {
			return errors.WithMessage(err, "failed to connect to api")
		}
		err = rc.Do(ctx, client.Request{
			Method:       http.MethodPost,
			Path:         fmt.Sprintf("/bodies/%d/new_member", bodyId),
			Body:         map[string]Candidate{"member": c, "user": c},
			ResourceType: "body",
			ResourceId:   idString(bodyId),
		}, nil)
		if err != nil {
			return errors.WithMessagef(err, "create member %s request failed", c.Email)
		}
		return nil
	}
}
