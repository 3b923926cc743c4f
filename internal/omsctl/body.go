package omsctl

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/body"
)

// ListBodies prints one page of bodies matching paging.Query as a table.
func (a *App) ListBodies(ctx *omscontext.Context, paging client.Paging) error {
	bodies, err := a.Params.BodyAPI.List(ctx, paging)
	if err != nil {
		return errors.WithMessage(err, "error listing bodies")
	}
	t := newTable(a.Out, "id", "name", "abbreviation", "legacy key", "type", "shadow circle")
	for _, b := range bodies {
		t.row(b.Id, b.Name, b.Abbreviation, b.LegacyKey, b.Type, optionalInt(b.ShadowCircleId))
	}
	return t.flush()
}

// GetBodies fetches the given bodies concurrently and prints them as yaml, in the order requested.
func (a *App) GetBodies(ctx *omscontext.Context, ids []int) error {
	bodies := make([]body.Body, len(ids))
	g, gctx := omscontext.ErrGroup(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			b, err := a.Params.BodyAPI.Get(gctx, id)
			if err != nil {
				return errors.WithMessagef(err, "error getting body %d", id)
			}
			bodies[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(bodies) == 1 {
		return a.printYaml(bodies[0])
	}
	return a.printYaml(bodies)
}

func (a *App) CreateBody(ctx *omscontext.Context, b body.Body) error {
	created, err := a.Params.BodyAPI.Create(ctx, b)
	if err != nil {
		return errors.WithMessagef(err, "error creating body %s", b.Name)
	}
	fmt.Fprintf(a.Out, "Created body %s with id %d\n", created.Name, created.Id)
	return nil
}

// UpdateBody fetches a body, lets edit change it and writes it back. Nothing is written if edit fails.
func (a *App) UpdateBody(ctx *omscontext.Context, id int, edit func(*body.Body) error) error {
	b, err := a.Params.BodyAPI.Get(ctx, id)
	if err != nil {
		return errors.WithMessagef(err, "error getting body %d", id)
	}
	if err := edit(&b); err != nil {
		return err
	}
	b.Id = id
	if _, err := a.Params.BodyAPI.Update(ctx, b); err != nil {
		return errors.WithMessagef(err, "error updating body %d", id)
	}
	fmt.Fprintf(a.Out, "Updated body %d\n", id)
	return nil
}

// SetShadowCircle assigns the circle mirroring a body's members. A nil circleId unassigns it.
func (a *App) SetShadowCircle(ctx *omscontext.Context, bodyId int, circleId *int) error {
	return a.UpdateBody(ctx, bodyId, func(b *body.Body) error {
		b.ShadowCircleId = circleId
		return nil
	})
}

func (a *App) DeleteBody(ctx *omscontext.Context, id int) error {
	if err := a.Params.BodyAPI.Delete(ctx, id); err != nil {
		return errors.WithMessagef(err, "error deleting body %d", id)
	}
	fmt.Fprintf(a.Out, "Deleted body %d and all bound circles\n", id)
	return nil
}

// JoinBody sends a join request for the current user.
func (a *App) JoinBody(ctx *omscontext.Context, id int, motivation string) error {
	if err := a.Params.MemberAPI.Join(ctx, id, motivation); err != nil {
		return errors.WithMessagef(err, "error joining body %d", id)
	}
	fmt.Fprintf(a.Out, "Join request for body %d sent\n", id)
	return nil
}
