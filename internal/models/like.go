package models

// PostLike marks that a user has liked a post. Existence of the row is
// the source of truth; Post.HeartCount is a denormalized cache.
type PostLike struct {
	ID     int64 `gorm:"primaryKey;autoIncrement;column:id"`
	PostID int64 `gorm:"not null;uniqueIndex:post_likes_pair_ux,priority:1;column:post_id"`
	UserID int64 `gorm:"not null;uniqueIndex:post_likes_pair_ux,priority:2;column:user_id"`

	// Relationships
	Post *Post    `gorm:"foreignKey:PostID;references:ID"`
	User *Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for PostLike
func (PostLike) TableName() string {
	return "post_likes"
}

// CommentLike marks that a user has liked a comment
type CommentLike struct {
	ID        int64 `gorm:"primaryKey;autoIncrement;column:id"`
	CommentID int64 `gorm:"not null;uniqueIndex:comment_likes_pair_ux,priority:1;column:comment_id"`
	UserID    int64 `gorm:"not null;uniqueIndex:comment_likes_pair_ux,priority:2;column:user_id"`

	// Relationships
	Comment *Comment `gorm:"foreignKey:CommentID;references:ID"`
	User    *Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for CommentLike
func (CommentLike) TableName() string {
	return "comment_likes"
}
