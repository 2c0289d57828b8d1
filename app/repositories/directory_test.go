package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirper/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPUserDirectoryBatchesLookups(t *testing.T) {
	var calls int
	var gotIDs string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotIDs = r.URL.Query().Get("ids")
		json.NewEncoder(w).Encode([]models.Author{
			{ID: "user_alice", Username: "alice", AvatarURL: "https://img.example/alice.png"},
			{ID: "user_bob", Username: "bob", AvatarURL: "https://img.example/bob.png"},
		})
	}))
	defer srv.Close()

	dir := NewHTTPUserDirectory(srv.URL)
	users, err := dir.GetUsers(context.Background(), []string{"user_alice", "user_bob"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "user_alice,user_bob", gotIDs)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
}

func TestHTTPUserDirectoryEmptyBatch(t *testing.T) {
	dir := NewHTTPUserDirectory("http://directory.invalid")
	users, err := dir.GetUsers(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestHTTPUserDirectoryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := NewHTTPUserDirectory(srv.URL)
	_, err := dir.GetUsers(context.Background(), []string{"user_alice"})
	assert.Error(t, err)
}

func TestStaticUserDirectoryOmitsUnknownIDs(t *testing.T) {
	dir := NewStaticUserDirectory([]models.Author{
		{ID: "user_alice", Username: "alice"},
	})

	users, err := dir.GetUsers(context.Background(), []string{"user_alice", "user_ghost"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user_alice", users[0].ID)
}
