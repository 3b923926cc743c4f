package typeahead

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/oms-project/omsctl/internal/common/omscontext"
)

// The candidate list shown for "pa"/"par" when the reply to "pa" arrives 200ms after the reply to "par".
func TestSession_SlowOlderReplyNeverReplacesNewerOne(t *testing.T) {
	backend := map[string][]string{
		"pa":  {"paris", "parma", "pavia", "palermo"},
		"par": {"paris", "parma"},
	}
	execute := func(_ *omscontext.Context, text string, generation uint64) (uint64, []string, error) {
		if text == "pa" {
			time.Sleep(250 * time.Millisecond)
		}
		return generation, backend[text], nil
	}

	var mu sync.Mutex
	var shown [][]string
	s, err := NewSession(omscontext.Background(), SessionConfig{QuietPeriod: time.Hour}, execute, func(reply Reply[[]string]) {
		mu.Lock()
		defer mu.Unlock()
		shown = append(shown, reply.Result)
	})
	require.NoError(t, err)
	defer s.Close()

	s.Input("pa")
	s.Flush()
	time.Sleep(50 * time.Millisecond)
	s.Input("par")
	s.Flush()
	s.Wait()

	reply, ok := s.Visible()
	require.True(t, ok)
	assert.Equal(t, "par", reply.Text)
	assert.Equal(t, backend["par"], reply.Result)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, [][]string{backend["par"]}, shown)
}

func TestSession_DebouncesKeystrokes(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Now())
	var executed []string
	var mu sync.Mutex
	execute := func(_ *omscontext.Context, text string, generation uint64) (uint64, []string, error) {
		mu.Lock()
		executed = append(executed, text)
		mu.Unlock()
		return generation, []string{text}, nil
	}
	s, err := NewSession(omscontext.Background(), SessionConfig{QuietPeriod: quietPeriod, Clock: clk}, execute, nil)
	require.NoError(t, err)
	defer s.Close()

	for _, text := range []string{"p", "pa", "par", "pari"} {
		s.Input(text)
		clk.Step(50 * time.Millisecond)
	}
	_, ok := s.Visible()
	assert.False(t, ok)

	clk.Step(quietPeriod)
	require.Eventually(t, func() bool {
		_, ok := s.Visible()
		return ok
	}, waitTimeout, 5*time.Millisecond)
	s.Wait()

	reply, _ := s.Visible()
	assert.Equal(t, "pari", reply.Text)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"pari"}, executed)
}

func TestSession_CacheAnswersRepeatedQueries(t *testing.T) {
	var calls atomic.Int32
	execute := func(_ *omscontext.Context, text string, generation uint64) (uint64, []string, error) {
		calls.Add(1)
		return generation, []string{text + "-result"}, nil
	}
	s, err := NewSession(omscontext.Background(), SessionConfig{QuietPeriod: time.Hour, CacheSize: 8}, execute, nil)
	require.NoError(t, err)
	defer s.Close()

	for _, text := range []string{"pa", "par", "pa"} {
		s.Input(text)
		s.Flush()
		s.Wait()
	}

	reply, ok := s.Visible()
	require.True(t, ok)
	assert.Equal(t, "pa", reply.Text)
	assert.Equal(t, []string{"pa-result"}, reply.Result)
	assert.Equal(t, uint64(3), reply.Generation)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSession_CloseDropsPendingInput(t *testing.T) {
	clk := clocktesting.NewFakeClock(time.Now())
	var calls atomic.Int32
	execute := func(_ *omscontext.Context, text string, generation uint64) (uint64, []string, error) {
		calls.Add(1)
		return generation, nil, nil
	}
	s, err := NewSession(omscontext.Background(), SessionConfig{QuietPeriod: quietPeriod, Clock: clk}, execute, nil)
	require.NoError(t, err)

	s.Input("pa")
	s.Close()
	clk.Step(quietPeriod)

	assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	_, ok := s.Visible()
	assert.False(t, ok)
}
