package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repositories bundles the relational stores used by the services.
type Repositories struct {
	Users    UserRepository
	Follows  FollowRepository
	Posts    PostRepository
	Comments CommentRepository
	Likes    LikeRepository
}

// NewGormRepositories wires every relational repository to the same database handle.
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewGormUserRepository(db),
		Follows:  NewGormFollowRepository(db),
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		Likes:    NewGormLikeRepository(db),
	}
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// The referenced row was deleted after the existence check.
		return ErrNotFound
	}
	// Not every driver translates constraint errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return ErrDuplicate
	}
	if strings.Contains(msg, "foreign key constraint") {
		return ErrNotFound
	}
	return err
}
