package repositories

import (
	"context"

	"socialgraph/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return translateError(r.db.WithContext(ctx).Create(post).Error)
}

// GetByID retrieves a post by ID
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

// ListByOwner returns the owner's posts, most recent first
func (r *GormPostRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", ownerID).
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeleteCascade deletes the owner's post with its likes and comments
func (r *GormPostRepository) DeleteCascade(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND created_by_id = ?", id, ownerID).
			First(&post).Error
		if err != nil {
			return translateError(err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}
