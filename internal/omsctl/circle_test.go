package omsctl

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/pkg/client/circle"
)

var circles = []circle.Circle{
	{Id: 1, Name: "Paris board"},
	{Id: 2, Name: "Party committee"},
	{Id: 3, Name: "Pandas"},
}

func matching(query string) []circle.Circle {
	out := []circle.Circle{}
	for _, c := range circles {
		if strings.HasPrefix(strings.ToLower(c.Name), query) {
			out = append(out, c)
		}
	}
	return out
}

func TestCreateCircle(t *testing.T) {
	a, buf := newTestApp("")
	a.Params.CircleAPI.Create = func(ctx context.Context, bodyId int, c circle.Circle) (circle.Circle, error) {
		c.Id = 12
		return c, nil
	}

	require.NoError(t, a.CreateCircle(testContext(), 5, circle.Circle{Name: "Board"}))
	assert.Equal(t, "Created circle Board with id 12\n", buf.String())
}

func TestSearchCircles_OnlyLastInputShown(t *testing.T) {
	a, buf := newTestApp("p\npa\npar\n")
	var mu sync.Mutex
	var queries []string
	a.Params.CircleAPI.Search = func(ctx context.Context, bodyId int, query string, limit int) ([]circle.Circle, error) {
		assert.Equal(t, 5, bodyId)
		assert.Equal(t, 8, limit)
		mu.Lock()
		queries = append(queries, query)
		mu.Unlock()
		return matching(query), nil
	}

	// Nothing is issued before the end of input, which flushes the last line.
	err := a.SearchCircles(testContext(), 5, SearchOptions{QuietPeriod: time.Hour, Limit: 8})
	require.NoError(t, err)

	assert.Equal(t, []string{"par"}, queries)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[par] 2 candidate(s)\n"), out)
	assert.Contains(t, out, "Paris board")
	assert.Contains(t, out, "Party committee")
	assert.NotContains(t, out, "Pandas")
}

// "pa" is answered only after "par" has been answered. Its late reply must never be shown.
func TestSearchCircles_LateReplyDropped(t *testing.T) {
	a, buf := newTestApp("pa\npar\n")
	parAnswered := make(chan struct{})
	var once sync.Once
	a.Params.CircleAPI.Search = func(ctx context.Context, bodyId int, query string, limit int) ([]circle.Circle, error) {
		switch query {
		case "pa":
			select {
			case <-parAnswered:
			case <-time.After(2 * time.Second):
			}
		case "par":
			defer once.Do(func() { close(parAnswered) })
		}
		return matching(query), nil
	}

	err := a.SearchCircles(testContext(), 5, SearchOptions{QuietPeriod: 0, Limit: 8})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "[pa] ")
	assert.Contains(t, out, "[par] 2 candidate(s)")
}

func TestSearchCircles_ErrorShownForCurrentQuery(t *testing.T) {
	a, buf := newTestApp("x\n")
	a.Params.CircleAPI.Search = func(ctx context.Context, bodyId int, query string, limit int) ([]circle.Circle, error) {
		return nil, errors.New("service unavailable")
	}

	require.NoError(t, a.SearchCircles(testContext(), 5, SearchOptions{QuietPeriod: time.Hour, Limit: 8}))
	assert.Equal(t, "[x] error: service unavailable\n", buf.String())
}

func TestSearchCircles_EmptyInput(t *testing.T) {
	a, buf := newTestApp("")
	a.Params.CircleAPI.Search = func(ctx context.Context, bodyId int, query string, limit int) ([]circle.Circle, error) {
		t.Fatal("no query expected")
		return nil, nil
	}

	require.NoError(t, a.SearchCircles(testContext(), 5, SearchOptions{QuietPeriod: time.Hour, Limit: 8}))
	assert.Empty(t, buf.String())
}

func TestSearchCircles_CancelWhileInputStaysOpen(t *testing.T) {
	a, buf := newTestApp("")
	in, w := io.Pipe()
	t.Cleanup(func() { _ = w.Close() })
	a.In = in
	a.Params.CircleAPI.Search = func(ctx context.Context, bodyId int, query string, limit int) ([]circle.Circle, error) {
		t.Errorf("no query expected, got %q", query)
		return nil, nil
	}

	ctx, cancel := omscontext.WithCancel(testContext())
	done := make(chan error, 1)
	go func() {
		done <- a.SearchCircles(ctx, 5, SearchOptions{QuietPeriod: time.Hour, Limit: 8})
	}()
	_, err := io.WriteString(w, "pa\n")
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("search did not return after cancellation")
	}
	assert.Empty(t, buf.String())
}
