package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollowThenUnfollowRestoresState(t *testing.T) {
	env := newTestEnv()
	alice, _ := env.createUser(t, "alice", "a@x.com", "1")
	bob, bobToken := env.createUser(t, "bob", "b@x.com", "2")

	w := env.request(t, http.MethodPost, "/users/follow", bobToken, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Followed successfully", body["message"])
	assert.EqualValues(t, 1, body["followersCount"])
	assert.EqualValues(t, 1, body["followingCount"])

	gotBob, err := env.users.FindByID(context.Background(), bob.ID)
	require.NoError(t, err)
	gotAlice, err := env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Contains(t, gotBob.Following, alice.ID)
	assert.Contains(t, gotAlice.Followers, bob.ID)

	// Following again without an intervening unfollow is rejected.
	w = env.request(t, http.MethodPost, "/users/follow", bobToken, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already following this user", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodPost, "/users/unfollow", bobToken, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 0, body["followersCount"])
	assert.EqualValues(t, 0, body["followingCount"])

	gotBob, err = env.users.FindByID(context.Background(), bob.ID)
	require.NoError(t, err)
	gotAlice, err = env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotBob.Following)
	assert.Empty(t, gotAlice.Followers)
	assert.Equal(t, 0, gotBob.FollowingCount)
	assert.Equal(t, 0, gotAlice.FollowersCount)
}

func TestUnfollowWithoutFollowing(t *testing.T) {
	env := newTestEnv()
	alice, _ := env.createUser(t, "alice", "a@x.com", "1")
	_, bobToken := env.createUser(t, "bob", "b@x.com", "2")

	w := env.request(t, http.MethodPost, "/users/unfollow", bobToken, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not following this user", decodeBody(t, w)["message"])
}

func TestFollowSelf(t *testing.T) {
	env := newTestEnv()
	alice, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/users/follow", token, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot follow yourself", decodeBody(t, w)["message"])
}

func TestFollowBadTarget(t *testing.T) {
	env := newTestEnv()
	_, token := env.createUser(t, "alice", "a@x.com", "1")

	w := env.request(t, http.MethodPost, "/users/follow", token, map[string]any{"userId": "nonsense"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodPost, "/users/follow", token, map[string]any{"userId": primitive.NewObjectID().Hex()})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User to follow not found", decodeBody(t, w)["message"])
}

func TestListFollowersAndFollowing(t *testing.T) {
	env := newTestEnv()
	alice, aliceToken := env.createUser(t, "alice", "a@x.com", "1")
	bob, bobToken := env.createUser(t, "bob", "b@x.com", "2")

	w := env.request(t, http.MethodPost, "/users/follow", bobToken, map[string]any{"userId": alice.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/followers/"+alice.ID.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	followers := decodeList(t, w)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0]["username"])

	w = env.request(t, http.MethodGet, "/following/"+bob.ID.Hex(), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	following := decodeList(t, w)
	require.Len(t, following, 1)
	assert.Equal(t, "alice", following[0]["username"])
}
