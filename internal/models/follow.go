package models

import (
	"time"
)

// Follow represents a directed follow edge (follower -> following).
// The unique index on the ordered pair, not the application-level
// existence check, is what guards against duplicate edges under
// concurrent creates.
type Follow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FollowerID  int64     `gorm:"not null;uniqueIndex:follows_pair_ux,priority:1;column:follower_id"`
	FollowingID int64     `gorm:"not null;uniqueIndex:follows_pair_ux,priority:2;index:follows_following_ix;column:following_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower  *Account `gorm:"foreignKey:FollowerID;references:ID"`
	Following *Account `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}

// Block represents a directed suppression edge (user -> blocked).
// Presence of the edge hides all of blocked's content from user.
type Block struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;uniqueIndex:blocks_pair_ux,priority:1;column:user_id"`
	BlockedID int64     `gorm:"not null;uniqueIndex:blocks_pair_ux,priority:2;column:blocked_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User    *Account `gorm:"foreignKey:UserID;references:ID"`
	Blocked *Account `gorm:"foreignKey:BlockedID;references:ID"`
}

// TableName specifies the table name for Block
func (Block) TableName() string {
	return "blocks"
}
