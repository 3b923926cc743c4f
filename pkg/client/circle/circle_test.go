package circle

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/pkg/client/clienttest"
)

func TestCreate(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusCreated, Circle{Id: 12, Name: "Board", BodyId: 2})

	created, err := Create(server.Client())(context.Background(), 2, Circle{Name: "Board"})
	require.NoError(t, err)
	assert.Equal(t, 12, created.Id)

	call := server.NextCall()
	assert.Equal(t, "/bodies/2/circles", call.Path)
	assert.Equal(t, map[string]interface{}{
		"circle": map[string]interface{}{"name": "Board", "joinable": false},
	}, call.Body)
}

func TestSearch(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, []Circle{{Id: 1, Name: "Board"}})

	circles, err := Search(server.Client())(context.Background(), 2, "bo", 0)
	require.NoError(t, err)
	assert.Equal(t, []Circle{{Id: 1, Name: "Board"}}, circles)

	call := server.NextCall()
	assert.Equal(t, http.MethodGet, call.Method)
	assert.Equal(t, map[string]string{"limit": "8", "offset": "0", "query": "bo"}, call.Query)
}

func TestSearch_EmptyQueryIsSent(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, []Circle{})

	_, err := Search(server.Client())(context.Background(), 2, "", 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"limit": "3", "offset": "0", "query": ""}, server.NextCall().Query)
}

func TestSearch_MissingDataIsEmpty(t *testing.T) {
	for name, payload := range map[string]string{
		"no data":   `{"success":true}`,
		"null data": `{"success":true,"data":null}`,
		"no body":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			server := clienttest.NewServerFunc(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, payload)
			})
			circles, err := Search(server.Client())(context.Background(), 2, "x", 0)
			require.NoError(t, err)
			assert.NotNil(t, circles)
			assert.Empty(t, circles)
		})
	}
}
