package models

import (
	"time"
)

// User represents a registered account. Profile data is immutable after
// registration; only the id and username are ever exposed to other users.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

// UserInfo is the public shape of a user embedded in project and task payloads.
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Info returns the public view of the user.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username}
}
