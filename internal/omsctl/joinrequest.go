package omsctl

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/pkg/client"
)

func (a *App) ListJoinRequests(ctx *omscontext.Context, bodyId int, paging client.Paging) error {
	requests, err := a.Params.JoinRequestAPI.List(ctx, bodyId, paging)
	if err != nil {
		return errors.WithMessagef(err, "error listing join requests of body %d", bodyId)
	}
	t := newTable(a.Out, "id", "user id", "name", "motivation")
	for _, r := range requests {
		name := ""
		if r.User != nil {
			name = r.User.FirstName + " " + r.User.LastName
		}
		t.row(r.Id, r.UserId, name, r.Motivation)
	}
	return t.flush()
}

// ProcessJoinRequest approves or rejects a pending join request.
func (a *App) ProcessJoinRequest(ctx *omscontext.Context, bodyId int, joinRequestId int, approved bool) error {
	if err := a.Params.JoinRequestAPI.Process(ctx, bodyId, joinRequestId, approved); err != nil {
		return errors.WithMessagef(err, "error processing join request %d", joinRequestId)
	}
	verb := "Rejected"
	if approved {
		verb = "Approved"
	}
	fmt.Fprintf(a.Out, "%s join request %d\n", verb, joinRequestId)
	return nil
}
