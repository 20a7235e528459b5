package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"socialgraph/app/models"
	"socialgraph/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment by the actor to an existing post
func (s *CommentService) AddComment(ctx context.Context, actor models.Identity, postID uint, text string) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post %d: %w", postID, err)
	}

	comment := &models.Comment{
		UserID:    actor.UserID,
		Comment:   text,
		CreatedAt: time.Now().UTC(),
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	if err := comment.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	// The post may be deleted between the lookup and the insert.
	err = s.commentRepo.Create(ctx, comment)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// LikeService records and removes likes
type LikeService struct {
	likeRepo repositories.LikeRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo repositories.LikeRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo}
}

// LikePost likes a post on behalf of the actor. created is false when the
// actor had already liked it.
func (s *LikeService) LikePost(ctx context.Context, actor models.Identity, postID uint) (created bool, err error) {
	created, err = s.likeRepo.Upsert(ctx, postID, actor.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, ErrPostNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to like post %d: %w", postID, err)
	}
	return created, nil
}

// UnlikePost removes the actor's like from a post
func (s *LikeService) UnlikePost(ctx context.Context, actor models.Identity, postID uint) error {
	err := s.likeRepo.Delete(ctx, postID, actor.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPostOrLikeNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to unlike post %d: %w", postID, err)
	}
	return nil
}
