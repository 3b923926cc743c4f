// Package typeahead implements search-as-you-type plumbing: a debouncer that waits for a quiet period
// between keystrokes, and a guard that lets only the reply to the most recently issued query reach
// visible state, however the replies are reordered in flight.
package typeahead

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/internal/common/omscontext"
)

type State int

const (
	StateIdle State = iota
	StateQuerying
	StateResolved
	StateFailed
	StateSuperseded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQuerying:
		return "querying"
	case StateResolved:
		return "idle-with-result"
	case StateFailed:
		return "idle-with-error"
	case StateSuperseded:
		return "superseded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ExecuteFunc runs one query. It must echo back the generation it was given.
type ExecuteFunc[R any] func(ctx *omscontext.Context, text string, generation uint64) (uint64, R, error)

// Reply is what the guard hands over when the current generation settles.
// Exactly one of Result and Err is meaningful.
type Reply[R any] struct {
	Text       string
	Generation uint64
	Result     R
	Err        error
}

// Guard tags every query with a monotonically increasing generation and applies a reply only if its
// generation is still the current one when it arrives. Stale replies, successful or not, are dropped
// without surfacing anything.
//
// Issuing a query cancels the context of the previous one. Nothing depends on the transport honouring
// that cancellation; it only frees resources early.
type Guard[R any] struct {
	ctx     *omscontext.Context
	execute ExecuteFunc[R]
	apply   func(Reply[R])

	// applyMu serializes apply calls, so that an apply can run without mu held and a newer reply is
	// still never overwritten by an older one.
	applyMu sync.Mutex

	mu         sync.Mutex
	generation uint64
	state      State
	cancel     context.CancelFunc
	closed     bool
	inflight   sync.WaitGroup
}

// NewGuard returns a guard with generation 0 and no query issued. apply is called for a reply whose
// generation was current when the reply arrived. Calls to apply never overlap, and apply does not hold
// the guard's lock, so a slow apply delays later replies but never Issue. apply must not call Close.
func NewGuard[R any](ctx *omscontext.Context, execute ExecuteFunc[R], apply func(Reply[R])) *Guard[R] {
	return &Guard[R]{
		ctx:     ctx,
		execute: execute,
		apply:   apply,
		state:   StateIdle,
	}
}

// Issue advances the generation and starts executing text under it. It returns the new generation,
// or the current one unchanged if the guard has been closed.
func (g *Guard[R]) Issue(text string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return g.generation
	}
	if g.cancel != nil {
		g.cancel()
	}
	g.generation++
	generation := g.generation
	g.state = StateQuerying

	ctx, cancel := omscontext.WithCancel(omscontext.WithLogFields(g.ctx, logrus.Fields{
		"query":      text,
		"generation": generation,
	}))
	g.cancel = cancel
	g.inflight.Add(1)
	go g.run(ctx, cancel, text, generation)

	return generation
}

func (g *Guard[R]) run(ctx *omscontext.Context, cancel context.CancelFunc, text string, generation uint64) {
	defer g.inflight.Done()
	defer cancel()

	echoed, result, err := g.execute(ctx, text, generation)

	g.applyMu.Lock()
	defer g.applyMu.Unlock()

	g.mu.Lock()
	if echoed > g.generation {
		current := g.generation
		g.mu.Unlock()
		panic(fmt.Sprintf("typeahead: reply tagged with generation %d, but only %d have been issued", echoed, current))
	}
	if g.closed || echoed != g.generation {
		ctx.Log.Debugf("discarding reply for superseded generation %d (current %d)", echoed, g.generation)
		g.mu.Unlock()
		return
	}
	if err != nil {
		g.state = StateFailed
	} else {
		g.state = StateResolved
	}
	g.mu.Unlock()

	g.apply(Reply[R]{
		Text:       text,
		Generation: echoed,
		Result:     result,
		Err:        err,
	})
}

// Generation returns the generation of the most recently issued query.
func (g *Guard[R]) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// State returns the state of the most recently issued query.
func (g *Guard[R]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// StateOf returns the state of the query issued under generation. Any generation older than the
// current one is superseded, whether or not its request has returned yet.
func (g *Guard[R]) StateOf(generation uint64) State {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case generation == 0 || generation > g.generation:
		return StateIdle
	case generation < g.generation:
		return StateSuperseded
	default:
		return g.state
	}
}

// Wait blocks until every request issued so far has returned, applied or not.
func (g *Guard[R]) Wait() {
	g.inflight.Wait()
}

// Close cancels the in-flight request and makes the guard drop every reply from now on.
// Subsequent calls to Issue are no-ops.
func (g *Guard[R]) Close() {
	g.mu.Lock()
	g.closed = true
	if g.cancel != nil {
		g.cancel()
	}
	g.mu.Unlock()
	g.Wait()
}
