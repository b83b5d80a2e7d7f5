package models

import (
	"database/sql"
	"time"
)

// Account represents a registered user
type Account struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username  string    `gorm:"type:varchar(32);not null;uniqueIndex:accounts_username_ux;column:username"`
	Password  string    `gorm:"type:varchar(100);not null;column:password"`
	Email     string    `gorm:"type:varchar(100);not null;uniqueIndex:accounts_email_ux;column:email"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Profile fields
	Fullname string         `gorm:"type:varchar(100);not null;default:'';column:fullname"`
	Role     string         `gorm:"type:varchar(20);not null;default:'';column:role"`
	Avatar   string         `gorm:"type:varchar(1024);not null;default:'';column:avatar"`
	Story    sql.NullString `gorm:"type:text;column:story"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// AccountSummary is the subset of profile fields attached to posts,
// comments and messages when rendering.
type AccountSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Summary returns the display subset of the account
func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Fullname: a.Fullname,
		Avatar:   a.Avatar,
	}
}
