package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/internal/common/omscontext"
	"github.com/oms-project/omsctl/internal/common/omserrors"
	"github.com/oms-project/omsctl/internal/common/requestid"
)

type thing struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *RestClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := NewRestClient(&ApiConnectionDetails{
		OmsUrl:   server.URL + "/api",
		Token:    "secret",
		Timeout:  time.Second,
		RetryMax: 2,
	})
	require.NoError(t, err)
	c.retrying.RetryWaitMin = time.Millisecond
	c.retrying.RetryWaitMax = time.Millisecond
	return c
}

func TestDo_DecodesEnvelopeAndSendsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/bodies/7", r.URL.Path)
		assert.Equal(t, "ab", r.URL.Query().Get("query"))
		assert.Equal(t, "secret", r.Header.Get(AuthTokenHeader))
		assert.NotEmpty(t, r.Header.Get(requestid.HeaderKey))
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":7,"name":"AEGEE-Delft"}}`)
	})

	var out thing
	err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/bodies/7",
		Query:  Paging{Query: "ab"}.Values(),
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, thing{Id: 7, Name: "AEGEE-Delft"}, out)
}

func TestDo_EncodesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]thing
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]thing{"body": {Name: "new"}}, payload)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":1,"name":"new"}}`)
	})

	var out thing
	err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/bodies",
		Body:   map[string]thing{"body": {Name: "new"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Id)
}

func TestDo_ReusesRequestIdFromContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get(requestid.HeaderKey))
	})
	ctx := requestid.AddToContext(omscontext.Background(), "req-1")
	require.NoError(t, c.Do(ctx, Request{Method: http.MethodDelete, Path: "/bodies/1"}, nil))
}

func TestDo_LogsWithContextFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	ctx := requestid.AddToContext(
		omscontext.New(context.Background(), logrus.NewEntry(logger).WithField("entity", "bodies")),
		"req-2",
	)

	require.NoError(t, c.Do(ctx, Request{Method: http.MethodDelete, Path: "/bodies/1"}, nil))

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, "bodies", e.Data["entity"])
		assert.Equal(t, "req-2", e.Data["requestId"])
		assert.Equal(t, "DELETE /bodies/1", e.Data["action"])
	}
}

func TestDo_MissingDataLeavesTargetUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	out := []thing{}
	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/bodies/1/circles"}, &out))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestDo_Unprocessable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"errors":{"name":["can't be blank"]}}`)
	})
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/bodies"}, nil)

	var e *omserrors.ErrUnprocessable
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []string{"can't be blank"}, e.Fields["name"])
}

func TestDo_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"Body not found"}`)
	})
	err := c.Do(context.Background(), Request{
		Method:       http.MethodGet,
		Path:         "/bodies/9",
		ResourceType: "body",
		ResourceId:   "9",
	}, nil)

	var e *omserrors.ErrNotFound
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "body", e.Type)
	assert.Equal(t, "9", e.Value)
}

func TestDo_RetriesIdempotentRequests(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":1}}`)
	})
	var out thing
	require.NoError(t, c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/bodies/1"}, &out))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, out.Id)
}

func TestDo_NeverRetriesPost(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/bodies"}, nil)

	var e *omserrors.ErrHttpStatus
	require.True(t, errors.As(err, &e))
	assert.Equal(t, http.StatusServiceUnavailable, e.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPaging_Values(t *testing.T) {
	assert.Equal(t, "", Paging{}.Values().Encode())
	assert.Equal(t, "limit=8&query=pa", Paging{Query: "pa", Limit: 8}.Values().Encode())
	assert.Equal(t, "limit=10&offset=20", Paging{Limit: 10, Offset: 20}.Values().Encode())
}
