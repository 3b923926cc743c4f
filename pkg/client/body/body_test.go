package body

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/internal/common/omserrors"
	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/clienttest"
)

func intPtr(i int) *int {
	return &i
}

func TestCreate(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusCreated, Body{Id: 3, Name: "AEGEE-Delft"})

	created, err := Create(server.Client())(context.Background(), Body{Name: "AEGEE-Delft", LegacyKey: "DEL"})
	require.NoError(t, err)
	assert.Equal(t, Body{Id: 3, Name: "AEGEE-Delft"}, created)

	call := server.NextCall()
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/bodies", call.Path)
	assert.Equal(t, map[string]interface{}{
		"body": map[string]interface{}{"name": "AEGEE-Delft", "legacy_key": "DEL", "shadow_circle_id": nil},
	}, call.Body)
}

func TestGet(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, Body{Id: 3, Name: "AEGEE-Delft", ShadowCircleId: intPtr(12)})

	body, err := Get(server.Client())(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, intPtr(12), body.ShadowCircleId)
	assert.Equal(t, "/bodies/3", server.NextCall().Path)
}

func TestGet_NotFound(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusNotFound, nil)

	_, err := Get(server.Client())(context.Background(), 3)
	var e *omserrors.ErrNotFound
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "body", e.Type)
	assert.Equal(t, "3", e.Value)
}

func TestUpdate_ClearsShadowCircle(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, Body{Id: 3, Name: "AEGEE-Delft"})

	_, err := Update(server.Client())(context.Background(), Body{Id: 3, Name: "AEGEE-Delft"})
	require.NoError(t, err)

	call := server.NextCall()
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/bodies/3", call.Path)
	sent := call.Body["body"].(map[string]interface{})
	assert.Contains(t, sent, "shadow_circle_id")
	assert.Nil(t, sent["shadow_circle_id"])
}

func TestDelete(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, nil)

	require.NoError(t, Delete(server.Client())(context.Background(), 3))
	call := server.NextCall()
	assert.Equal(t, http.MethodDelete, call.Method)
	assert.Equal(t, "/bodies/3", call.Path)
}

func TestList(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, []Body{{Id: 1, Name: "a"}, {Id: 2, Name: "b"}})

	bodies, err := List(server.Client())(context.Background(), client.Paging{Query: "a", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, bodies, 2)
	assert.Equal(t, map[string]string{"query": "a", "limit": "10"}, server.NextCall().Query)
}

func TestCreate_Unprocessable(t *testing.T) {
	server := clienttest.NewServerFunc(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":{"name":["has already been taken"]}}`))
	})

	_, err := Create(server.Client())(context.Background(), Body{Name: "dup"})
	var e *omserrors.ErrUnprocessable
	require.True(t, errors.As(err, &e))
	assert.Contains(t, err.Error(), `create body "dup" request failed`)
}
