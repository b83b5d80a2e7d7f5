package models

import (
	"database/sql"
	"time"
)

// Notification is a best-effort event record for a recipient account
type Notification struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64         `gorm:"not null;index:notifications_user_ix;column:user_id"`
	ActorID   sql.NullInt64 `gorm:"column:actor_id"`
	Title     string        `gorm:"type:varchar(255);not null;default:'';column:title"`
	Read      bool          `gorm:"not null;default:false;column:read"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`

	// Relationships
	User  *Account `gorm:"foreignKey:UserID;references:ID"`
	Actor *Account `gorm:"foreignKey:ActorID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
