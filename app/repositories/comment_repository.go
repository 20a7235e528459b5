package repositories

import (
	"context"

	"socialgraph/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment on an existing post
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", comment.PostID).First(&models.Post{}).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Omit(clause.Associations).Create(comment).Error)
	})
}

type commentSummaryRow struct {
	ID       uint
	PostID   uint
	Comment  string
	Username string
}

// ListSummariesByPosts returns comment projections grouped by post ID
func (r *GormCommentRepository) ListSummariesByPosts(ctx context.Context, postIDs []uint) (map[uint][]*models.CommentSummary, error) {
	out := make(map[uint][]*models.CommentSummary, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var rows []commentSummaryRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.comment, users.username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.post_id IN ?", postIDs).
		Order("comments.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], &models.CommentSummary{
			ID:       row.ID,
			Comment:  row.Comment,
			Username: row.Username,
		})
	}
	return out, nil
}
