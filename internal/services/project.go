package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskhub/backend/internal/authz"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

// UpdateProjectRequest carries optional fields; nil means "leave unchanged".
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListForUser returns every project the user is a member of, newest first.
func (s *ProjectService) ListForUser(userID uint) ([]models.ProjectInfo, error) {
	var projectIDs []uint
	if err := s.db.Model(&models.ProjectMember{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &projectIDs).Error; err != nil {
		return nil, err
	}

	infos := make([]models.ProjectInfo, 0, len(projectIDs))
	if len(projectIDs) == 0 {
		return infos, nil
	}

	var projects []models.Project
	if err := s.db.Preload("Owner").Preload("Members.User").
		Where("id IN ?", projectIDs).
		Order("created_at DESC, id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	for i := range projects {
		infos = append(infos, projects[i].Info())
	}
	return infos, nil
}

// Create stores a new project owned by ownerID and adds the owner to the
// membership set. Both writes commit in one transaction so no reader ever
// sees a project whose owner is not a member.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID uint) (*models.ProjectInfo, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, response.NewFieldError("description", "this field may not be blank")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, response.NewFieldError("name", "this field may not be blank")
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{ProjectID: project.ID, UserID: ownerID}
		return tx.Create(&member).Error
	}); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return s.reload(project.ID)
}

// GetForUser fetches a project scoped to the user's membership. A project
// that does not exist and a project the user is not a member of are both
// reported as not found, so existence is never revealed to non-members.
func (s *ProjectService) GetForUser(id, userID uint) (*models.Project, error) {
	var membership models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", id, userID).First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	var project models.Project
	if err := s.db.Preload("Owner").Preload("Members.User").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Update changes project fields. Membership is checked before ownership:
// a non-member gets not found, a member who is not the owner gets forbidden.
func (s *ProjectService) Update(id, userID uint, req *UpdateProjectRequest) (*models.ProjectInfo, error) {
	project, err := s.GetForUser(id, userID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditProject(userID, project) {
		return nil, response.NewForbidden("only the project owner can edit the project")
	}

	fields := map[string]string{}
	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fields["name"] = "this field may not be blank"
		} else {
			updates["name"] = *req.Name
		}
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			fields["description"] = "this field may not be blank"
		} else {
			updates["description"] = *req.Description
		}
	}
	if len(fields) > 0 {
		return nil, response.NewValidation(fields)
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.reload(id)
}

// Delete removes a project and everything it owns: tasks and memberships go
// in the same transaction (the explicit cascade).
func (s *ProjectService) Delete(id, userID uint) error {
	project, err := s.GetForUser(id, userID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteProject(userID, project) {
		return response.NewForbidden("only the project owner can delete the project")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds the named user to the project's membership set. The project
// is fetched without membership scoping: this is an owner-only action and the
// owner is always a member anyway. Adding an existing member is a no-op.
func (s *ProjectService) AddMember(projectID, actorID uint, username string) error {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found")
		}
		return err
	}

	if !authz.CanAddMember(actorID, &project) {
		return response.NewForbidden("only the project owner can add members")
	}

	user, err := findUserByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	member := models.ProjectMember{ProjectID: projectID, UserID: user.ID}
	// ON CONFLICT DO NOTHING on the composite unique index keeps concurrent
	// double-adds converging on a single membership row.
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error; err != nil {
		return err
	}
	return nil
}

// ListMembers returns the membership set of a project the user belongs to.
func (s *ProjectService) ListMembers(projectID, userID uint) ([]models.UserInfo, error) {
	project, err := s.GetForUser(projectID, userID)
	if err != nil {
		return nil, err
	}

	members := make([]models.UserInfo, 0, len(project.Members))
	for _, m := range project.Members {
		if m.User != nil {
			members = append(members, m.User.Info())
		}
	}
	return members, nil
}

func (s *ProjectService) reload(id uint) (*models.ProjectInfo, error) {
	var project models.Project
	if err := s.db.Preload("Owner").Preload("Members.User").First(&project, id).Error; err != nil {
		return nil, err
	}
	info := project.Info()
	return &info, nil
}
