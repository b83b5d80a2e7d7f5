package models

import (
	"database/sql"
	"time"
)

// Message is a direct message between two accounts. A shared post is
// carried as a denormalized JSON snapshot of the post's display fields
// at share time; later edits to the post do not propagate.
type Message struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	SenderID   int64     `gorm:"not null;index:messages_sender_ix;column:sender_id"`
	ReceiverID int64     `gorm:"not null;index:messages_receiver_ix;column:receiver_id"`
	Content    string    `gorm:"type:text;not null;default:'';column:content"`
	Read       bool      `gorm:"not null;default:false;column:read"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	SharedPostID   sql.NullInt64  `gorm:"column:shared_post_id"`
	SharedPostData sql.NullString `gorm:"type:text;column:shared_post_data"`

	// Relationships
	Sender   *Account `gorm:"foreignKey:SenderID;references:ID"`
	Receiver *Account `gorm:"foreignKey:ReceiverID;references:ID"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}
