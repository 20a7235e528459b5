package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentController(t *testing.T) {
	s := setupTestServer(t, false)
	alice := s.createUser(t, "alice")
	postID := s.createPost(t, alice, "Hello")

	w := s.do(t, &alice, http.MethodPost, fmt.Sprintf("/api/comment/%d/", postID), `{"comment":"first"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotZero(t, decodeBody(t, w)["id"])

	w = s.do(t, &alice, http.MethodPost, "/api/comment/999/", `{"comment":"lost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found.", decodeBody(t, w)["error"])

	w = s.do(t, &alice, http.MethodPost, fmt.Sprintf("/api/comment/%d/", postID), `{"comment":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "comment is required.", decodeBody(t, w)["error"])

	assert.Equal(t, 1, s.store.CommentCount(postID))
}

func TestLikeController(t *testing.T) {
	s := setupTestServer(t, false)
	alice := s.createUser(t, "alice")
	bob := s.createUser(t, "bob")
	postID := s.createPost(t, alice, "Hello")
	like := fmt.Sprintf("/api/like/%d/", postID)
	unlike := fmt.Sprintf("/api/unlike/%d/", postID)

	w := s.do(t, &bob, http.MethodPost, unlike, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found or you have not liked this post yet.", decodeBody(t, w)["error"])

	w = s.do(t, &bob, http.MethodPost, like, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You have liked this post.", decodeBody(t, w)["message"])

	w = s.do(t, &bob, http.MethodPost, like, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You have already liked this post.", decodeBody(t, w)["message"])
	assert.Equal(t, 1, s.store.LikeCount(postID))

	w = s.do(t, &bob, http.MethodPost, "/api/like/999/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found.", decodeBody(t, w)["error"])

	w = s.do(t, &bob, http.MethodPost, unlike, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You have unliked this post.", decodeBody(t, w)["message"])
	assert.Equal(t, 0, s.store.LikeCount(postID))
}
