package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Pawarnaren/ConnectApp-Backend/controllers"
	"github.com/Pawarnaren/ConnectApp-Backend/helper"
	"github.com/Pawarnaren/ConnectApp-Backend/middlewares"
	"github.com/Pawarnaren/ConnectApp-Backend/models"
	"github.com/Pawarnaren/ConnectApp-Backend/routes"
	"github.com/Pawarnaren/ConnectApp-Backend/store/memstore"
)

const testPassword = "correct-horse-battery"

type testEnv struct {
	router *gin.Engine
	users  *memstore.UserStore
	posts  *memstore.PostStore
	tokens *helper.TokenService
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	users := memstore.NewUserStore()
	posts := memstore.NewPostStore()
	images := memstore.NewImageStore()
	tokens := helper.NewTokenService("test-secret", 2*time.Hour)

	userController := controllers.NewUserController(users, images, tokens, "https://example.com/default.png")
	connectionController := controllers.NewConnectionController(users)
	postController := controllers.NewPostController(posts, users)

	router := gin.New()
	requireAuth := middlewares.RequireAuth(tokens, users)
	identifyByEmail := middlewares.IdentifyByEmail(users)

	routes.AuthRouter(router, userController)
	routes.HomeRouter(router, userController, requireAuth, identifyByEmail)
	routes.UserRouter(router, userController, connectionController, requireAuth)
	routes.PostRouter(router, postController, requireAuth)

	return &testEnv{router: router, users: users, posts: posts, tokens: tokens}
}

// createUser seeds a user directly in the store and returns it with a
// valid session token.
func (e *testEnv) createUser(t *testing.T, username, email, phone string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           primitive.NewObjectID(),
		FirstName:    "Test",
		LastName:     "User",
		Username:     username,
		Email:        email,
		Phone:        phone,
		Password:     string(hash),
		Followers:    []primitive.ObjectID{},
		Following:    []primitive.ObjectID{},
		ProfileImage: "https://example.com/default.png",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, e.users.Insert(context.Background(), &user))

	token, err := e.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) requestWithHeader(t *testing.T, method, path, header, value string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(header, value)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupPayload(username, email, phone string) map[string]any {
	return map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"username":  username,
		"email":     email,
		"phone":     phone,
		"password":  testPassword,
	}
}
