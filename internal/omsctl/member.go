package omsctl

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/member"
)

func (a *App) ListMembers(ctx *omscontext.Context, bodyId int, paging client.Paging) error {
	memberships, err := a.Params.MemberAPI.List(ctx, bodyId, paging)
	if err != nil {
		return errors.WithMessagef(err, "error listing members of body %d", bodyId)
	}
	t := newTable(a.Out, "id", "user id", "name", "comment", "fee")
	for _, m := range memberships {
		name := ""
		if m.User != nil {
			name = m.User.FirstName + " " + m.User.LastName
		}
		t.row(m.Id, m.UserId, name, m.Comment, m.Fee)
	}
	return t.flush()
}

func (a *App) CreateMember(ctx *omscontext.Context, bodyId int, c member.Candidate) error {
	if err := a.Params.MemberAPI.Create(ctx, bodyId, c); err != nil {
		return errors.WithMessagef(err, "error creating member of body %d", bodyId)
	}
	fmt.Fprintf(a.Out, "Created member %s. They received a mail with instructions on how to log in\n", c.Email)
	return nil
}

func (a *App) UpdateMembership(ctx *omscontext.Context, bodyId int, m member.Membership) error {
	if err := a.Params.MemberAPI.Update(ctx, bodyId, m); err != nil {
		return errors.WithMessagef(err, "error updating membership %d", m.Id)
	}
	fmt.Fprintf(a.Out, "Updated membership %d\n", m.Id)
	return nil
}

func (a *App) DeleteMembership(ctx *omscontext.Context, bodyId int, membershipId int) error {
	if err := a.Params.MemberAPI.Delete(ctx, bodyId, membershipId); err != nil {
		return errors.WithMessagef(err, "error deleting membership %d", membershipId)
	}
	fmt.Fprintf(a.Out, "Deleted membership %d\n", membershipId)
	return nil
}
