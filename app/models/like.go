package models

import (
	"time"

	"gorm.io/gorm"
)

// Validate checks the like references both a post and a user.
func (l *Like) Validate() error {
	return validate.Struct(l)
}

// BeforeCreate stamps the creation time in UTC.
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return l.Validate()
}
