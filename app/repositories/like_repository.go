package repositories

import (
	"context"

	"socialgraph/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLikeRepository implements LikeRepository using GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Upsert is get-or-create on the (post, user) unique index.
func (r *GormLikeRepository) Upsert(ctx context.Context, postID, userID uint) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", postID).First(&models.Post{}).Error; err != nil {
			return translateError(err)
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{PostID: postID, UserID: userID})
		if res.Error != nil {
			return translateError(res.Error)
		}
		created = res.RowsAffected == 1
		return nil
	})
	return created, err
}

// Delete removes the user's like on the post
func (r *GormLikeRepository) Delete(ctx context.Context, postID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type likeCountRow struct {
	PostID uint
	Total  int64
}

// CountByPosts returns like counts keyed by post ID; posts without likes are absent
func (r *GormLikeRepository) CountByPosts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var rows []likeCountRow
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, count(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.Total
	}
	return out, nil
}
