package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, likeRepo repositories.LikeRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

// CreatePost creates a post owned by the actor
func (s *PostService) CreatePost(ctx context.Context, actor models.Identity, title, description string) (*models.Post, error) {
	post := &models.Post{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		CreatedByID: actor.UserID,
	}

	if err := post.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// DeletePost deletes one of the actor's posts together with its comments and
// likes. Missing posts and posts owned by someone else are reported the same way.
func (s *PostService) DeletePost(ctx context.Context, actor models.Identity, postID uint) error {
	err := s.postRepo.DeleteCascade(ctx, postID, actor.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFoundOrNotOwner
	}
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}
	return nil
}

// ListOwnPosts returns the actor's posts, newest first, with like counts and comments
func (s *PostService) ListOwnPosts(ctx context.Context, actor models.Identity) ([]*models.PostSummary, error) {
	posts, err := s.postRepo.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	summaries := make([]*models.PostSummary, 0, len(posts))
	if len(posts) == 0 {
		return summaries, nil
	}

	ids := make([]uint, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	likes, err := s.likeRepo.CountByPosts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	comments, err := s.commentRepo.ListSummariesByPosts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	for _, post := range posts {
		summaries = append(summaries, post.Summary(likes[post.ID], comments[post.ID]))
	}
	return summaries, nil
}
