package repositories

import (
	"context"

	"socialgraph/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFollowRepository implements FollowRepository using GORM
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Add inserts the edge, leaving an existing one untouched.
func (r *GormFollowRepository) Add(ctx context.Context, followerID, followingID uint) (bool, error) {
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Remove deletes the edge if present
func (r *GormFollowRepository) Remove(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountFollowers counts users following userID
func (r *GormFollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&n).Error
	return n, err
}

// CountFollowing counts users that userID follows
func (r *GormFollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&n).Error
	return n, err
}
