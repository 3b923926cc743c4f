package member

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oms-project/omsctl/pkg/client"
	"github.com/oms-project/omsctl/pkg/client/clienttest"
)

func TestCreate_SendsCandidateAsMemberAndUser(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusCreated, nil)

	c := Candidate{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org"}
	require.NoError(t, Create(server.Client())(context.Background(), 5, c))

	call := server.NextCall()
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/bodies/5/new_member", call.Path)
	expected := map[string]interface{}{"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.org"}
	assert.Equal(t, map[string]interface{}{"member": expected, "user": expected}, call.Body)
}

func TestCreate_FailureNamesCandidate(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusInternalServerError, nil)

	err := Create(server.Client())(context.Background(), 5, Candidate{Email: "ada@example.org"})
	assert.ErrorContains(t, err, "create member ada@example.org request failed")
}

func TestJoin(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusCreated, nil)

	require.NoError(t, Join(server.Client())(context.Background(), 5, "I like it"))

	call := server.NextCall()
	assert.Equal(t, "/bodies/5/members", call.Path)
	assert.Equal(t, map[string]interface{}{
		"join_request": map[string]interface{}{"motivation": "I like it"},
	}, call.Body)
}

func TestList(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, []Membership{
		{Id: 1, UserId: 10, User: &User{Id: 10, FirstName: "Ada", LastName: "Lovelace"}},
	})

	memberships, err := List(server.Client())(context.Background(), 5, client.Paging{Offset: 30})
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "Ada", memberships[0].User.FirstName)

	call := server.NextCall()
	assert.Equal(t, "/bodies/5/members", call.Path)
	assert.Equal(t, map[string]string{"offset": "30"}, call.Query)
}

func TestUpdate(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, nil)

	require.NoError(t, Update(server.Client())(context.Background(), 5, Membership{Id: 7, Comment: "treasurer"}))

	call := server.NextCall()
	assert.Equal(t, http.MethodPut, call.Method)
	assert.Equal(t, "/bodies/5/members/7", call.Path)
	assert.Equal(t, map[string]interface{}{
		"body_membership": map[string]interface{}{"id": float64(7), "comment": "treasurer"},
	}, call.Body)
}

func TestDelete(t *testing.T) {
	server := clienttest.NewServer(t, http.StatusOK, nil)

	require.NoError(t, Delete(server.Client())(context.Background(), 5, 7))
	call := server.NextCall()
	assert.Equal(t, http.MethodDelete, call.Method)
	assert.Equal(t, "/bodies/5/members/7", call.Path)
}
