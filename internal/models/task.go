package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. The set is a configuration point, not a database constraint;
// handlers validate against it on input.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task belongs to exactly one project and is optionally assigned to a user.
// The assignee is not required to be a project member.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:50;not null;default:todo" json:"status"`
	Deadline    *time.Time     `json:"deadline"`
	ProjectID   uint           `gorm:"not null;index" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"-"`
	AssigneeID  *uint          `gorm:"index" json:"-"`
	Assignee    *User          `gorm:"foreignKey:AssigneeID" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }

// TaskInfo is the API shape of a task. The write-side fields (project id,
// assignee username) are accepted on requests; reads embed the resolved
// assignee instead.
type TaskInfo struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline"`
	ProjectID    uint       `json:"project_id"`
	AssigneeInfo *UserInfo  `json:"assignee_info"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Info returns the API view of the task. Assignee must be loaded when set.
func (t *Task) Info() TaskInfo {
	info := TaskInfo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Deadline:    t.Deadline,
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt,
	}
	if t.Assignee != nil {
		assignee := t.Assignee.Info()
		info.AssigneeInfo = &assignee
	}
	return info
}

// ValidTaskStatus reports whether s is one of the accepted status values.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}
