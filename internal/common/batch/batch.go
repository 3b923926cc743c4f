// Package batch fans a collection of independent submissions out concurrently and reports a single
// aggregate outcome once every submission has settled.
//
// A failing item is a normal terminal state: it is counted, its error is kept for reporting, and it never
// aborts, retries or delays its siblings. There is no cancellation; once dispatched, every item is counted.
package batch

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/oms-project/omsctl/internal/common/omscontext"
)

// SubmitFunc performs the side effect for a single item, e.g. one create request.
// A nil return counts as success, anything else as failure.
type SubmitFunc[T any] func(ctx *omscontext.Context, item T) error

// Result holds the tallies of a batch.
type Result struct {
	Succeeded int
	Failed    int
	Total     int
	// Err aggregates the errors of failed items, each prefixed with the item index.
	// It is nil when Failed == 0.
	Err error
}

// Settled returns the number of items whose outcome is known.
func (r Result) Settled() int {
	return r.Succeeded + r.Failed
}

func (r Result) String() string {
	return fmt.Sprintf("Bulk import finished, %d successful, %d failed", r.Succeeded, r.Failed)
}

type Option func(*options)

type options struct {
	onProgress func(Result)
	metrics    *Metrics
	entity     string
}

// WithProgress registers a callback invoked after every individual settlement, including the last one.
// It is always invoked before the completion callback for the same settlement.
func WithProgress(onProgress func(Result)) Option {
	return func(o *options) {
		o.onProgress = onProgress
	}
}

// WithMetrics records per-item outcomes and the batch duration, labelled with entity.
func WithMetrics(m *Metrics, entity string) Option {
	return func(o *options) {
		o.metrics = m
		o.entity = entity
	}
}

// job is the bookkeeping of one Run call. It is never shared between calls.
type job struct {
	mu        sync.Mutex
	succeeded int
	failed    int
	total     int
	errs      *multierror.Error
	fired     bool
	start     time.Time
	onDone    func(Result)
	opts      options
}

// Run dispatches submit(item) for every item, each in its own goroutine and without waiting for earlier
// submissions to settle. onDone is called exactly once, with Succeeded+Failed == Total, from the goroutine
// whose settlement completed the batch. An empty batch calls onDone immediately with zero tallies.
//
// Each goroutine receives its own copy of its item. Items that hold pointers still share what they point
// to, so callers should not mutate a record once it has been handed to Run.
func Run[T any](ctx *omscontext.Context, items []T, submit SubmitFunc[T], onDone func(Result), opts ...Option) {
	j := &job{
		total:  len(items),
		start:  time.Now(),
		onDone: onDone,
	}
	for _, opt := range opts {
		opt(&j.opts)
	}

	ctx.Log.Debugf("dispatching %d submissions", j.total)

	j.mu.Lock()
	j.fireIfComplete()
	j.mu.Unlock()

	for i, item := range items {
		go func(index int, item T) {
			j.settle(index, safeSubmit(ctx, submit, item))
		}(i, item)
	}
}

// RunAndWait is Run, blocking until the completion callback has fired and returning its Result.
func RunAndWait[T any](ctx *omscontext.Context, items []T, submit SubmitFunc[T], opts ...Option) Result {
	done := make(chan Result, 1)
	Run(ctx, items, submit, func(r Result) { done <- r }, opts...)
	return <-done
}

func safeSubmit[T any](ctx *omscontext.Context, submit SubmitFunc[T], item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("submission panicked: %v", r)
		}
	}()
	return submit(ctx, item)
}

func (j *job) settle(index int, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.fired {
		panic(fmt.Sprintf("batch: item %d settled after the batch of %d completed", index, j.total))
	}

	if err != nil {
		j.failed++
		j.errs = multierror.Append(j.errs, errors.Wrapf(err, "item %d", index))
	} else {
		j.succeeded++
	}
	if j.opts.metrics != nil {
		j.opts.metrics.recordItem(j.opts.entity, err)
	}
	if j.opts.onProgress != nil {
		j.opts.onProgress(j.result())
	}
	j.fireIfComplete()
}

// fireIfComplete must be called with j.mu held.
func (j *job) fireIfComplete() {
	if j.succeeded+j.failed != j.total {
		return
	}
	if j.fired {
		panic(fmt.Sprintf("batch: completion of batch of %d fired twice", j.total))
	}
	j.fired = true
	if j.opts.metrics != nil {
		j.opts.metrics.recordBatch(j.opts.entity, time.Since(j.start))
	}
	if j.onDone != nil {
		j.onDone(j.result())
	}
}

func (j *job) result() Result {
	return Result{
		Succeeded: j.succeeded,
		Failed:    j.failed,
		Total:     j.total,
		Err:       j.errs.ErrorOrNil(),
	}
}
