package models

import (
	"database/sql"
	"time"
)

// Comment belongs to a post and optionally to a parent comment,
// forming a reply tree via the self-reference.
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64         `gorm:"not null;index:comments_post_ix;column:post_id"`
	AuthorID  int64         `gorm:"not null;column:author_id"`
	ParentID  sql.NullInt64 `gorm:"index:comments_parent_ix;column:parent_id"`
	Content   string        `gorm:"type:text;not null;column:content"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`

	// Denormalized like count, see CommentLike
	LikeCount int64 `gorm:"not null;default:0;column:like_count"`

	// Relationships
	Post    *Post     `gorm:"foreignKey:PostID;references:ID"`
	Author  *Account  `gorm:"foreignKey:AuthorID;references:ID"`
	Parent  *Comment  `gorm:"foreignKey:ParentID;references:ID"`
	Replies []Comment `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
