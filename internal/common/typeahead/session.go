package typeahead

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"k8s.io/utils/clock"

	"github.com/oms-project/omsctl/internal/common/omscontext"
)

type SessionConfig struct {
	// QuietPeriod is how long input has to stay unchanged before a query is issued.
	QuietPeriod time.Duration
	// CacheSize is the number of successful replies remembered by query text. Zero disables caching.
	CacheSize int
	Clock     clock.WithDelayedExecution
}

// Session is the state of one search widget: keystrokes go through a Debouncer, the surviving inputs are
// issued through a Guard, and only the guard's apply step writes the visible reply.
type Session[R any] struct {
	guard     *Guard[R]
	debouncer *Debouncer
	cache     *lru.Cache
	onChange  func(Reply[R])

	mu      sync.Mutex
	visible Reply[R]
	shown   bool
}

// NewSession builds a session. onChange, if not nil, is called every time the visible reply changes, with
// the same restrictions as the apply callback of a Guard: calls never overlap and it must not close the session.
func NewSession[R any](ctx *omscontext.Context, config SessionConfig, execute ExecuteFunc[R], onChange func(Reply[R])) (*Session[R], error) {
	s := &Session[R]{onChange: onChange}

	if config.CacheSize > 0 {
		cache, err := lru.New(config.CacheSize)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		s.cache = cache
		execute = s.cached(execute)
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	s.guard = NewGuard(ctx, execute, s.show)
	s.debouncer = NewDebouncer(clk, config.QuietPeriod, func(text string) { s.guard.Issue(text) })
	return s, nil
}

func (s *Session[R]) cached(execute ExecuteFunc[R]) ExecuteFunc[R] {
	return func(ctx *omscontext.Context, text string, generation uint64) (uint64, R, error) {
		if hit, ok := s.cache.Get(text); ok {
			ctx.Log.Debugf("answering %q from cache", text)
			return generation, hit.(R), nil
		}
		echoed, result, err := execute(ctx, text, generation)
		if err == nil {
			s.cache.Add(text, result)
		}
		return echoed, result, err
	}
}

func (s *Session[R]) show(reply Reply[R]) {
	s.mu.Lock()
	s.visible = reply
	s.shown = true
	s.mu.Unlock()
	if s.onChange != nil {
		s.onChange(reply)
	}
}

// Input feeds one keystroke state, i.e. the full text of the search box, into the session.
func (s *Session[R]) Input(text string) {
	s.debouncer.Input(text)
}

// Flush issues the pending input without waiting for the quiet period to elapse.
func (s *Session[R]) Flush() {
	s.debouncer.Flush()
}

// Visible returns the reply currently shown; ok is false until the first reply has been applied.
func (s *Session[R]) Visible() (reply Reply[R], ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible, s.shown
}

// Guard exposes the session's guard, e.g. to inspect its state.
func (s *Session[R]) Guard() *Guard[R] {
	return s.guard
}

// Wait blocks until every query issued so far has returned.
func (s *Session[R]) Wait() {
	s.guard.Wait()
}

// Close stops the session. Pending input is dropped and in-flight replies are discarded.
func (s *Session[R]) Close() {
	s.debouncer.Stop()
	s.guard.Close()
}
