package services

import (
	"errors"
	"strings"
	"time"

	"github.com/taskhub/backend/internal/authz"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Deadline    *time.Time `json:"deadline"`
	Project     uint       `json:"project" binding:"required"`
	Assignee    string     `json:"assignee"`
}

// UpdateTaskRequest carries optional fields; nil means "leave unchanged".
// Assignee set to the empty string clears the assignment.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Deadline    *time.Time `json:"deadline"`
	Project     *uint      `json:"project"`
	Assignee    *string    `json:"assignee"`
}

// Create stores a task in a project the creator is a member of. Both a
// missing project and a project the creator does not belong to come back as
// a field-level validation error keyed "project", not as 403/404 — this
// mirrors how project and assignee resolution behave as input validation.
func (s *TaskService) Create(req *CreateTaskRequest, userID uint) (*models.TaskInfo, error) {
	if _, err := s.memberProject(req.Project, userID); err != nil {
		return nil, err
	}

	var assigneeID *uint
	if req.Assignee != "" {
		assignee, err := findUserByUsername(s.db, req.Assignee)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewFieldError("assignee", "assignee user not found")
			}
			return nil, err
		}
		// The assignee is deliberately not required to be a project member.
		assigneeID = &assignee.ID
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Deadline:    req.Deadline,
		ProjectID:   req.Project,
		AssigneeID:  assigneeID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return s.reload(task.ID)
}

// ListMine returns every task assigned to the user, oldest first.
func (s *TaskService) ListMine(userID uint) ([]models.TaskInfo, error) {
	var tasks []models.Task
	if err := s.db.Preload("Assignee").
		Where("assignee_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return taskInfos(tasks), nil
}

// ListForProject returns every task in a project the user is a member of.
// Non-members get not found, same as the project read path.
func (s *TaskService) ListForProject(projectID, userID uint) ([]models.TaskInfo, error) {
	if _, err := s.memberProject(projectID, userID); err != nil {
		return nil, response.NewNotFound("project not found")
	}

	var tasks []models.Task
	if err := s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return taskInfos(tasks), nil
}

// Get fetches a task by id and checks membership of its project. Unlike the
// project path, a task that exists but is out of reach answers forbidden, so
// existence is revealed before the permission check.
func (s *TaskService) Get(id, userID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("Project.Members").Preload("Assignee").First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	if !authz.CanViewTask(userID, &task) {
		return nil, response.NewForbidden("you are not a member of this task's project")
	}
	return &task, nil
}

// Update applies a partial update. Any member of the task's project may
// update any field, including moving the task to another project the caller
// is a member of and re-resolving the assignee by username.
func (s *TaskService) Update(id, userID uint, req *UpdateTaskRequest) (*models.TaskInfo, error) {
	task, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTask(userID, task) {
		return nil, response.NewForbidden("you are not a member of this task's project")
	}

	fields := map[string]string{}
	updates := map[string]interface{}{}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			fields["title"] = "this field may not be blank"
		} else {
			updates["title"] = *req.Title
		}
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			fields["status"] = "invalid status"
		} else {
			updates["status"] = *req.Status
		}
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Project != nil {
		if _, perr := s.memberProject(*req.Project, userID); perr != nil {
			fields["project"] = "invalid project or you are not a member"
		} else {
			updates["project_id"] = *req.Project
		}
	}
	if req.Assignee != nil {
		if *req.Assignee == "" {
			updates["assignee_id"] = nil
		} else {
			assignee, aerr := findUserByUsername(s.db, *req.Assignee)
			if aerr != nil {
				if errors.Is(aerr, gorm.ErrRecordNotFound) {
					fields["assignee"] = "assignee user not found"
				} else {
					return nil, aerr
				}
			} else {
				updates["assignee_id"] = assignee.ID
			}
		}
	}

	if len(fields) > 0 {
		return nil, response.NewValidation(fields)
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.reload(id)
}

// Delete removes a task. Same membership rule as editing: any member.
func (s *TaskService) Delete(id, userID uint) error {
	task, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteTask(userID, task) {
		return response.NewForbidden("you are not a member of this task's project")
	}
	return s.db.Delete(task).Error
}

// memberProject resolves a project id scoped to the user's membership and
// maps failure to the "project" field error used by task input validation.
func (s *TaskService) memberProject(projectID, userID uint) (*models.Project, error) {
	var membership models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewFieldError("project", "invalid project or you are not a member")
		}
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewFieldError("project", "invalid project or you are not a member")
		}
		return nil, err
	}
	return &project, nil
}

func (s *TaskService) reload(id uint) (*models.TaskInfo, error) {
	var task models.Task
	if err := s.db.Preload("Assignee").First(&task, id).Error; err != nil {
		return nil, err
	}
	info := task.Info()
	return &info, nil
}

func taskInfos(tasks []models.Task) []models.TaskInfo {
	infos := make([]models.TaskInfo, 0, len(tasks))
	for i := range tasks {
		infos = append(infos, tasks[i].Info())
	}
	return infos
}
