package services

import (
	"testing"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	utils.SetJWTSecret("test-secret-for-service-testing")
}

var testJWTConfig = &config.JWTConfig{Secret: "test-secret-for-service-testing", ExpireHour: 1}

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// createUser registers a user directly through the auth service.
func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewAuthService(db, testJWTConfig).Register(&RegisterRequest{
		Username: username,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// createProject creates a project owned by the given user.
func createProject(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.ProjectInfo {
	t.Helper()

	project, err := NewProjectService(db).Create(&CreateProjectRequest{
		Name:        name,
		Description: "test project",
	}, ownerID)
	if err != nil {
		t.Fatalf("failed to create project %q: %v", name, err)
	}
	return project
}
