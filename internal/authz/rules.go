// Package authz holds the pure authorization predicates gating every
// mutation. Predicates never touch the database; callers load the resource
// (with memberships) first and branch on the result.
package authz

import "github.com/taskhub/backend/internal/models"

// CanViewProject: any member may read a project.
func CanViewProject(userID uint, project *models.Project) bool {
	return project.HasMember(userID)
}

// CanEditProject: only the owner may change project fields.
func CanEditProject(userID uint, project *models.Project) bool {
	return project.IsOwner(userID)
}

// CanDeleteProject: only the owner may delete a project.
func CanDeleteProject(userID uint, project *models.Project) bool {
	return project.IsOwner(userID)
}

// CanAddMember: only the owner may grow the membership set.
func CanAddMember(userID uint, project *models.Project) bool {
	return project.IsOwner(userID)
}

// CanViewTask: any member of the task's project may read it.
// task.Project with its members must be loaded.
func CanViewTask(userID uint, task *models.Task) bool {
	return task.Project != nil && task.Project.HasMember(userID)
}

// CanEditTask: any project member, not just the owner or assignee. This is
// deliberately looser than the project edit rule.
func CanEditTask(userID uint, task *models.Task) bool {
	return CanViewTask(userID, task)
}

// CanDeleteTask: same membership rule as editing.
func CanDeleteTask(userID uint, task *models.Task) bool {
	return CanViewTask(userID, task)
}
