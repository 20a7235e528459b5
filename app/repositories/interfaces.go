package repositories

import (
	"context"
	"time"

	"socialgraph/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByLogin finds a user by email or, failing that, by username.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

// FollowRepository defines the interface for the follow graph.
// Add and Remove report whether an edge was actually inserted or deleted.
type FollowRepository interface {
	Add(ctx context.Context, followerID, followingID uint) (bool, error)
	Remove(ctx context.Context, followerID, followingID uint) (bool, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Post, error)
	// DeleteCascade removes the post owned by ownerID together with its
	// likes and comments in one transaction. It returns ErrNotFound when no
	// such post exists for that owner.
	DeleteCascade(ctx context.Context, id, ownerID uint) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create returns ErrNotFound if the parent post does not exist.
	Create(ctx context.Context, comment *models.Comment) error
	ListSummariesByPosts(ctx context.Context, postIDs []uint) (map[uint][]*models.CommentSummary, error)
}

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	// Upsert inserts the (post, user) like unless it already exists and
	// reports whether a row was inserted. It returns ErrNotFound if the post
	// does not exist.
	Upsert(ctx context.Context, postID, userID uint) (bool, error)
	// Delete returns ErrNotFound if there was no like to remove.
	Delete(ctx context.Context, postID, userID uint) error
	CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// TokenRepository stores opaque bearer tokens.
type TokenRepository interface {
	Save(token string, userID uint, ttl time.Duration) error
	Lookup(token string) (uint, error)
	TokenForUser(userID uint) (string, error)
	// GetOrCreate returns the user's live token with its TTL refreshed, or
	// stores candidate as the new one. Check and write are atomic.
	GetOrCreate(userID uint, candidate string, ttl time.Duration) (string, error)
	Delete(token string) error
}
