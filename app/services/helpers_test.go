package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
	"socialgraph/app/repositories/mock"
)

type testEnv struct {
	repos    *repositories.Repositories
	store    *mock.Store
	graph    *GraphService
	posts    *PostService
	comments *CommentService
	likes    *LikeService
}

func newTestEnv() *testEnv {
	repos, store := mock.NewRepositories()
	return &testEnv{
		repos:    repos,
		store:    store,
		graph:    NewGraphService(repos.Users, repos.Follows),
		posts:    NewPostService(repos.Posts, repos.Comments, repos.Likes),
		comments: NewCommentService(repos.Comments, repos.Posts),
		likes:    NewLikeService(repos.Likes),
	}
}

func (e *testEnv) createUser(t *testing.T, name string) models.Identity {
	user := &models.User{
		Username:     name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hash",
	}
	require.NoError(t, e.repos.Users.Create(context.Background(), user))
	return user.Identity()
}

func (e *testEnv) createPost(t *testing.T, owner models.Identity, title string) *models.Post {
	post, err := e.posts.CreatePost(context.Background(), owner, title, "about "+title)
	require.NoError(t, err)
	return post
}
