package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectMember is a row in the project/user membership join table. The
// composite unique index makes concurrent double-adds converge on one row.
type ProjectMember struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectMember) TableName() string { return "project_members" }
