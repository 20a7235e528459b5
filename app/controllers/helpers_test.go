package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"socialgraph/app/logging"
	"socialgraph/app/middleware"
	"socialgraph/app/models"
	"socialgraph/app/repositories"
	"socialgraph/app/repositories/mock"
	"socialgraph/app/services"
)

type testServer struct {
	router *mux.Router
	repos  *repositories.Repositories
	store  *mock.Store
}

func setupTestServer(t *testing.T, legacy bool) *testServer {
	repos, store := mock.NewRepositories()
	resp := NewResponder(logging.Discard(), legacy)

	users := NewUserController(services.NewGraphService(repos.Users, repos.Follows), resp)
	posts := NewPostController(services.NewPostService(repos.Posts, repos.Comments, repos.Likes), resp)
	comments := NewCommentController(services.NewCommentService(repos.Comments, repos.Posts), resp)
	likes := NewLikeController(services.NewLikeService(repos.Likes), resp)

	router := mux.NewRouter()
	router.HandleFunc("/api/follow/{userId:[0-9]+}/", users.Follow).Methods(http.MethodPost)
	router.HandleFunc("/api/unfollow/{userId:[0-9]+}/", users.Unfollow).Methods(http.MethodPost)
	router.HandleFunc("/api/user/", users.Profile).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/", posts.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId:[0-9]+}/", posts.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/api/all_posts/", posts.Index).Methods(http.MethodGet)
	router.HandleFunc("/api/comment/{postId:[0-9]+}/", comments.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/like/{postId:[0-9]+}/", likes.Like).Methods(http.MethodPost)
	router.HandleFunc("/api/unlike/{postId:[0-9]+}/", likes.Unlike).Methods(http.MethodPost)

	return &testServer{router: router, repos: repos, store: store}
}

func (s *testServer) createUser(t *testing.T, name string) models.Identity {
	user := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, s.repos.Users.Create(context.Background(), user))
	return user.Identity()
}

// do sends a request as actor; a nil actor sends it unauthenticated.
func (s *testServer) do(t *testing.T, actor *models.Identity, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *actor))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createPost(t *testing.T, actor models.Identity, title string) uint {
	w := s.do(t, &actor, http.MethodPost, "/api/posts/", fmt.Sprintf(`{"title":%q,"description":"d"}`, title))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
