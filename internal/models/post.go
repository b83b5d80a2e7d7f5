package models

import (
	"database/sql"
	"time"
)

// Post content type constants
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

// Post represents a user post of any content type
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID  int64     `gorm:"not null;index:posts_author_ix;column:author_id"`
	Type      string    `gorm:"type:varchar(16);not null;index:posts_type_ix;column:type"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	Title   string         `gorm:"type:varchar(255);not null;default:'';column:title"`
	Content string         `gorm:"type:text;not null;default:'';column:content"`
	Video   sql.NullString `gorm:"type:varchar(1024);column:video"`

	// Mode is the declared visibility policy (public/private/friends).
	// Stored as the raw string; parsing lives in the feed package.
	Mode string `gorm:"type:varchar(16);not null;default:'';column:mode"`

	Address string `gorm:"type:varchar(255);not null;default:'';column:address"`
	Sports  string `gorm:"type:varchar(100);not null;default:'';column:sports"`
	Topic   string `gorm:"type:varchar(100);not null;default:'';column:topic"`

	// Denormalized like count, kept in step with post_likes rows
	// inside the same transaction as the row mutation.
	HeartCount int64 `gorm:"not null;default:0;column:heart_count"`

	// Relationships
	Author *Account    `gorm:"foreignKey:AuthorID;references:ID"`
	Images []PostImage `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostImage is an ordered image attached to a post
type PostImage struct {
	ID     int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PostID int64  `gorm:"not null;index:post_images_post_ix;column:post_id"`
	URL    string `gorm:"type:varchar(1024);not null;column:url"`
	Order  int    `gorm:"not null;default:0;column:ord"`
}

// TableName specifies the table name for PostImage
func (PostImage) TableName() string {
	return "post_images"
}
