package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Pawarnaren/ConnectApp-Backend/models"
)

func postPayload() map[string]any {
	return map[string]any{
		"name":    "n",
		"address": "addr",
		"phone":   "1",
		"imgUrl":  "u",
	}
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv()
	alice, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/posts/create", token, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, alice.ID.Hex(), body["owner"])
	assert.Equal(t, false, body["archived"])
	assert.Equal(t, "n", body["name"])

	// Owner counter reflects the creation on the next profile fetch.
	w = env.request(t, http.MethodGet, "/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["postsCount"])
}

func TestCreatePostMissingField(t *testing.T) {
	env := newTestEnv()
	_, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/posts/create", token, map[string]any{"name": "n"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePostMergesFields(t *testing.T) {
	env := newTestEnv()
	_, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/posts/create", token, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decodeBody(t, w)["_id"].(string)

	w = env.request(t, http.MethodPut, "/posts/"+postID, token, map[string]any{"name": "renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "renamed", body["name"])
	assert.Equal(t, "addr", body["address"])
	assert.Equal(t, "u", body["imgUrl"])
}

func TestUpdateAndDeleteForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv()
	_, aliceToken := env.createUser(t, "alice", "a@x.com", "1")
	_, bobToken := env.createUser(t, "bob", "b@x.com", "2")

	w := env.request(t, http.MethodPost, "/posts/create", aliceToken, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decodeBody(t, w)["_id"].(string)

	w = env.request(t, http.MethodPut, "/posts/"+postID, bobToken, map[string]any{"name": "hijacked"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not authorized", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodDelete, "/posts/"+postID, bobToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The post is unmodified.
	w = env.request(t, http.MethodGet, "/posts/"+postID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "n", decodeBody(t, w)["name"])
}

func TestDeletePostDecrementsCountFlooredAtZero(t *testing.T) {
	env := newTestEnv()
	alice, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/posts/create", token, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decodeBody(t, w)["_id"].(string)

	w = env.request(t, http.MethodDelete, "/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted", decodeBody(t, w)["message"])

	got, err := env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostsCount)

	// Deleting a post while the counter already reads zero must not
	// drive it negative.
	stray := models.Post{
		ID:      primitive.NewObjectID(),
		Name:    "n2",
		Address: "addr2",
		Phone:   "2",
		ImgURL:  "u2",
		Owner:   alice.ID,
	}
	require.NoError(t, env.posts.Insert(context.Background(), &stray))

	w = env.request(t, http.MethodDelete, "/posts/"+stray.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got, err = env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostsCount)
}

func TestDeleteMissingPost(t *testing.T) {
	env := newTestEnv()
	_, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodDelete, "/posts/"+primitive.NewObjectID().Hex(), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", decodeBody(t, w)["message"])
}

func TestArchiveToggle(t *testing.T) {
	env := newTestEnv()
	_, aliceToken := env.createUser(t, "alice", "a@x.com", "1")
	_, bobToken := env.createUser(t, "bob", "b@x.com", "2")

	w := env.request(t, http.MethodPost, "/posts/create", aliceToken, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decodeBody(t, w)["_id"].(string)

	// No ownership check on archive: bob can toggle alice's post.
	w = env.request(t, http.MethodPatch, "/posts/archive/"+postID, bobToken, map[string]any{"archived": true})
	require.Equal(t, http.StatusOK, w.Code)
	post := decodeBody(t, w)["post"].(map[string]any)
	assert.Equal(t, true, post["archived"])

	// A missing or non-boolean flag is rejected.
	w = env.request(t, http.MethodPatch, "/posts/archive/"+postID, bobToken, map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid archived status", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodPatch, "/posts/archive/"+postID, bobToken, map[string]any{"archived": "yes"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPatch, "/posts/archive/"+primitive.NewObjectID().Hex(), bobToken, map[string]any{"archived": true})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsByOwnerEmail(t *testing.T) {
	env := newTestEnv()
	_, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/posts/create", token, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.request(t, http.MethodPost, "/posts/create", token, postPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	archivedID := decodeBody(t, w)["_id"].(string)

	w = env.request(t, http.MethodPatch, "/posts/archive/"+archivedID, token, map[string]any{"archived": true})
	require.Equal(t, http.StatusOK, w.Code)

	// Active listing is public.
	w = env.request(t, http.MethodGet, "/posts/owner/a@x.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	// Archived listing requires a token.
	w = env.request(t, http.MethodGet, "/posts/archived/owner/a@x.com", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/posts/archived/owner/a@x.com", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	archived := decodeList(t, w)
	require.Len(t, archived, 1)
	assert.Equal(t, archivedID, archived[0]["_id"])

	w = env.request(t, http.MethodGet, "/posts/owner/ghost@x.com", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["message"])
}

func TestDemoPosts(t *testing.T) {
	env := newTestEnv()

	w := env.request(t, http.MethodGet, "/posts?limit=5&offset=0", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed := decodeList(t, w)
	require.Len(t, feed, 5)
	assert.NotEmpty(t, feed[0]["id"])
	assert.NotEmpty(t, feed[0]["name"])

	w = env.request(t, http.MethodGet, "/posts?limit=0", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid limit or offset parameter", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodGet, "/posts?offset=-1", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
