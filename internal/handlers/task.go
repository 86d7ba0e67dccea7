package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db),
	}
}

// Create creates a task in a project the principal is a member of. Project
// and assignee resolution failures come back as 400 field errors.
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	task, err := h.taskService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// ListMine returns tasks assigned to the principal.
// GET /api/tasks/mine
func (h *TaskHandler) ListMine(c *gin.Context) {
	tasks, err := h.taskService.ListMine(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// ListForProject returns every task of a project the principal is a member of.
// GET /api/projects/:id/tasks
func (h *TaskHandler) ListForProject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	tasks, err := h.taskService.ListForProject(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// GetByID returns a task. A missing task is 404; an existing task in a
// project the principal does not belong to is 403.
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	task, err := h.taskService.Get(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task.Info())
}

// Update applies a partial update; any project member may do this.
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	task, err := h.taskService.Update(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Delete removes a task; any project member may do this.
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	if err := h.taskService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
