package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns every project the principal is a member of.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// Create creates a new project owned by the principal.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, project)
}

// GetByID returns a project the principal is a member of. Non-members get
// the same not-found answer whether the project exists or not.
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetForUser(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project.Info())
}

// Update changes project fields; owner only.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	project, err := h.projectService.Update(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete removes a project and cascades its tasks and memberships; owner only.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	if err := h.projectService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

type AddMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

// AddMember adds a user (by username) to the project; owner only, idempotent.
// POST /api/projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	if err := h.projectService.AddMember(uint(id), middleware.GetUserID(c), req.Username); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "user " + req.Username + " added to project"})
}

// ListMembers returns the membership set of a project the principal belongs to.
// GET /api/projects/:id/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	members, err := h.projectService.ListMembers(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}
