package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate stamps the creation time in UTC and validates the post.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	return p.Validate()
}

// OwnedBy reports whether userID is the post's author.
func (p *Post) OwnedBy(userID uint) bool {
	return p.CreatedByID == userID
}

// Summary builds the listing projection of the post. comments may be nil.
func (p *Post) Summary(likes int64, comments []*CommentSummary) *PostSummary {
	if comments == nil {
		comments = []*CommentSummary{}
	}
	return &PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Likes:       likes,
		Comments:    comments,
	}
}
