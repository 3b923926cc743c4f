package omsctl

import (
	"bufio"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/internal/common/typeahead"
	"github.com/oms-project/omsctl/pkg/client/circle"
)

func (a *App) CreateCircle(ctx *omscontext.Context, bodyId int, c circle.Circle) error {
	created, err := a.Params.CircleAPI.Create(ctx, bodyId, c)
	if err != nil {
		return errors.WithMessagef(err, "error creating circle %s", c.Name)
	}
	fmt.Fprintf(a.Out, "Created circle %s with id %d\n", created.Name, created.Id)
	return nil
}

type SearchOptions struct {
	// How long input has to stay unchanged before it is searched for.
	QuietPeriod time.Duration
	// Maximum number of candidates shown.
	Limit int
	// Number of query results remembered during the session.
	CacheSize int
}

// SearchCircles runs an interactive search over the circles of a body, e.g. to pick its shadow circle.
// Every line read from a.In is the current content of the search box. Only the candidates for the most
// recent query are ever printed, regardless of the order in which replies arrive.
//
// Cancelling ctx returns at once, but the goroutine reading a.In stays blocked until a.In yields another
// line or ends, so a.In should not be read by anything else afterwards. For os.Stdin the process is
// about to exit anyway.
func (a *App) SearchCircles(ctx *omscontext.Context, bodyId int, opts SearchOptions) error {
	execute := func(ctx *omscontext.Context, text string, generation uint64) (uint64, []circle.Circle, error) {
		circles, err := a.Params.CircleAPI.Search(ctx, bodyId, text, opts.Limit)
		return generation, circles, err
	}
	session, err := typeahead.NewSession(ctx, typeahead.SessionConfig{
		QuietPeriod: opts.QuietPeriod,
		CacheSize:   opts.CacheSize,
	}, execute, a.printCandidates)
	if err != nil {
		return errors.WithMessage(err, "error starting search")
	}
	defer session.Close()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(a.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return errors.Wrap(err, "error reading search input")
				}
				// End of input: search for whatever was typed last and show its result.
				session.Flush()
				session.Wait()
				return nil
			}
			session.Input(text)
		}
	}
}

// printCandidates is only called for the reply to the current query.
func (a *App) printCandidates(reply typeahead.Reply[[]circle.Circle]) {
	if reply.Err != nil {
		fmt.Fprintf(a.Out, "[%s] error: %s\n", reply.Text, reply.Err)
		return
	}
	fmt.Fprintf(a.Out, "[%s] %d candidate(s)\n", reply.Text, len(reply.Result))
	t := newTable(a.Out, "id", "name", "joinable")
	for _, c := range reply.Result {
		t.row(c.Id, c.Name, c.Joinable)
	}
	_ = t.flush()
}
