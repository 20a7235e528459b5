package models

import (
	"time"

	"gorm.io/gorm"
)

// Validate rejects edges with a missing endpoint or a self-loop.
func (f *Follow) Validate() error {
	return validate.Struct(f)
}

// BeforeCreate stamps the creation time in UTC and validates the edge.
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	return f.Validate()
}
