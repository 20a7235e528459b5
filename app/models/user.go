package models

import (
	"time"

	"gorm.io/gorm"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate stamps the creation time in UTC and validates the user.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return u.Validate()
}

// Identity returns the authenticated-caller view of the user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}
