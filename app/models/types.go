package models

import "time"

// User is an account that can authenticate and own content.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username" validate:"required,min=3,max=150"`
	Email        string    `gorm:"size:254;not null;uniqueIndex" json:"email" validate:"required,email,max=254"`
	PasswordHash string    `gorm:"not null" json:"-" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

// Follow is a directed edge in the social graph: FollowerID follows FollowingID.
// A user's profile "following" set is every edge it is the follower of, and its
// "followers" set is the inverse.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_id" validate:"required"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"following_id" validate:"required,nefield=FollowerID"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Post represents a user's post. Its comments and likes reference it by PostID.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description" validate:"max=10000"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	CreatedByID uint      `gorm:"not null;index" json:"created_by_id" validate:"required"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Comment represents a comment left by a user on a post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id" validate:"required"`
	UserID    uint      `gorm:"not null;index" json:"user_id" validate:"required"`
	Comment   string    `gorm:"type:text;not null" json:"comment" validate:"required,max=2000"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Like records that a user liked a post. At most one Like exists per
// (post, user) pair; the unique index is what enforces it.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id" validate:"required"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user;index" json:"user_id" validate:"required"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

// Identity is an authenticated caller. Every service operation takes one
// explicitly instead of reading it from ambient request state.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// Profile is the follow-count view of a user.
type Profile struct {
	Username  string `json:"username"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

// CommentSummary is the lightweight comment projection embedded in a PostSummary.
type CommentSummary struct {
	ID       uint   `json:"id"`
	Comment  string `json:"comment"`
	Username string `json:"user__username"`
}

// PostSummary is a post as listed to its owner, with like count and comments.
type PostSummary struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	Likes       int64             `json:"likes"`
	Comments    []*CommentSummary `json:"comments"`
}

// AllModels lists every table the schema migration manages.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Follow{}, &Post{}, &Comment{}, &Like{}}
}
