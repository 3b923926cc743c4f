// Package clienttest provides a fake OMS core API for testing the resource packages.
package clienttest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/pkg/client"
)

// Call is a request received by the fake API.
type Call struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]interface{}
}

// Server records the calls it receives.
type Server struct {
	t     *testing.T
	Calls chan Call
	url   string
}

// NewServer starts a server that answers every request with status and, if data is not nil, the
// success envelope around data. It is closed when the test ends.
func NewServer(t *testing.T, status int, data interface{}) *Server {
	t.Helper()
	return NewServerFunc(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if data != nil {
			Respond(t, w, data)
		}
	})
}

// NewServerFunc starts a server that answers with handler.
func NewServerFunc(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{t: t, Calls: make(chan Call, 100)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
		for k := range r.URL.Query() {
			call.Query[k] = r.URL.Query().Get(k)
		}
		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if len(payload) > 0 {
			require.NoError(t, json.Unmarshal(payload, &call.Body))
		}
		s.Calls <- call
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	s.url = server.URL
	return s
}

// Respond writes data inside the success envelope.
func Respond(t *testing.T, w http.ResponseWriter, data interface{}) {
	require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data}))
}

// Client returns a provider of clients talking to s without retries.
func (s *Server) Client() client.ClientProvider {
	return client.NewClientProvider(func() *client.ApiConnectionDetails {
		return &client.ApiConnectionDetails{OmsUrl: s.url, Timeout: time.Second}
	})
}

// NextCall returns the oldest call not yet consumed, failing the test if there is none.
func (s *Server) NextCall() Call {
	s.t.Helper()
	select {
	case c := <-s.Calls:
		return c
	default:
		s.t.Fatal("no call received")
		return Call{}
	}
}
