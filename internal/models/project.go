package models

import (
	"time"

	"gorm.io/gorm"
)

// Project groups tasks and carries a membership set. The owner is fixed at
// creation and is always present in the membership set.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	OwnerID     uint            `gorm:"not null;index" json:"-"`
	Owner       *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members     []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"-"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// IsOwner reports whether the given user created the project.
func (p *Project) IsOwner(userID uint) bool {
	return p.OwnerID == userID
}

// HasMember reports whether the given user is in the membership set.
// Members must be loaded.
func (p *Project) HasMember(userID uint) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// ProjectInfo is the API shape of a project, with owner and members resolved
// to their public user views.
type ProjectInfo struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Owner       UserInfo   `json:"owner"`
	Members     []UserInfo `json:"members"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Info returns the API view of the project. Owner and Members (with their
// User association) must be loaded.
func (p *Project) Info() ProjectInfo {
	info := ProjectInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Members:     make([]UserInfo, 0, len(p.Members)),
		CreatedAt:   p.CreatedAt,
	}
	if p.Owner != nil {
		info.Owner = p.Owner.Info()
	}
	for _, m := range p.Members {
		if m.User != nil {
			info.Members = append(info.Members, m.User.Info())
		}
	}
	return info
}
