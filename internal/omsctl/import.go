package omsctl

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/renstrom/shortuuid"
	log "github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/internal/common/batch"
	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/internal/common/requestid"
	"github.com/oms-project/omsctl/pkg/client/body"
	"github.com/oms-project/omsctl/pkg/client/member"
	"github.com/oms-project/omsctl/pkg/client/util"
)

type ImportOptions struct {
	// Print every failed item after the summary.
	Verbose bool
	// Print the batch metrics in the Prometheus text format after the summary.
	PrintMetrics bool
}

// ImportBodies creates every body listed in fileName (a JSON array or YAML list), all at once, and
// reports how many succeeded. Individual failures do not make the import fail.
func (a *App) ImportBodies(ctx *omscontext.Context, fileName string, opts ImportOptions) error {
	var bodies []body.Body
	if err := util.BindJsonOrYaml(fileName, &bodies); err != nil {
		return errors.WithMessage(err, "error reading bodies to import")
	}
	ctx = omscontext.WithLogFields(ctx, log.Fields{"entity": "bodies", "file": fileName})
	result := batch.RunAndWait(ctx, bodies, withRequestId(func(ctx *omscontext.Context, b body.Body) error {
		_, err := a.Params.BodyAPI.Create(ctx, b)
		return err
	}), a.importOptions(ctx, "bodies")...)
	return a.reportImport(result, opts)
}

// ImportMembers creates a user and membership of bodyId for every candidate listed in fileName.
func (a *App) ImportMembers(ctx *omscontext.Context, bodyId int, fileName string, opts ImportOptions) error {
	var candidates []member.Candidate
	if err := util.BindJsonOrYaml(fileName, &candidates); err != nil {
		return errors.WithMessage(err, "error reading members to import")
	}
	ctx = omscontext.WithLogFields(ctx, log.Fields{"entity": "members", "file": fileName, "body": bodyId})
	result := batch.RunAndWait(ctx, candidates, withRequestId(func(ctx *omscontext.Context, c member.Candidate) error {
		return a.Params.MemberAPI.Create(ctx, bodyId, c)
	}), a.importOptions(ctx, "members")...)
	return a.reportImport(result, opts)
}

// withRequestId gives every submission its own request id, sent as the X-Request-Id header, and names
// it in the error of a failed submission so that it can be found in the server logs.
func withRequestId[T any](submit batch.SubmitFunc[T]) batch.SubmitFunc[T] {
	return func(ctx *omscontext.Context, item T) error {
		id := shortuuid.New()
		if err := submit(requestid.AddToContext(ctx, id), item); err != nil {
			return errors.WithMessagef(err, "request %s", id)
		}
		return nil
	}
}

func (a *App) importOptions(ctx *omscontext.Context, entity string) []batch.Option {
	return []batch.Option{
		batch.WithMetrics(a.Metrics, entity),
		batch.WithProgress(func(r batch.Result) {
			ctx.Log.Debugf("%d of %d settled", r.Settled(), r.Total)
		}),
	}
}

func (a *App) reportImport(result batch.Result, opts ImportOptions) error {
	fmt.Fprintln(a.Out, result.String())
	if opts.Verbose && result.Err != nil {
		var merr *multierror.Error
		if errors.As(result.Err, &merr) {
			for _, err := range merr.Errors {
				fmt.Fprintf(a.Out, "  %s\n", err)
			}
		} else {
			fmt.Fprintf(a.Out, "  %s\n", result.Err)
		}
	}
	if opts.PrintMetrics {
		if err := batch.WriteText(a.Out, a.Registry); err != nil {
			return errors.WithMessage(err, "error printing metrics")
		}
	}
	return nil
}
