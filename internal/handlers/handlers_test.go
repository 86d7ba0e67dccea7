package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-handler-testing")
}

var testConfig = &config.Config{
	JWT: config.JWTConfig{Secret: "test-secret-for-handler-testing", ExpireHour: 1},
}

// newTestServer wires the full API surface against a fresh in-memory database.
func newTestServer(t *testing.T) *gin.Engine {
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

	authHandler := NewAuthHandler(db, testConfig)
	projectHandler := NewProjectHandler(db)
	taskHandler := NewTaskHandler(db)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.GET("/projects", projectHandler.List)
		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects/:id", projectHandler.GetByID)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.DELETE("/projects/:id", projectHandler.Delete)
		protected.POST("/projects/:id/members", projectHandler.AddMember)
		protected.GET("/projects/:id/members", projectHandler.ListMembers)
		protected.GET("/projects/:id/tasks", taskHandler.ListForProject)

		protected.POST("/tasks", taskHandler.Create)
		protected.GET("/tasks/mine", taskHandler.ListMine)
		protected.GET("/tasks/:id", taskHandler.GetByID)
		protected.PUT("/tasks/:id", taskHandler.Update)
		protected.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return r
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

// signup registers a user and returns a login token.
func signup(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/auth/register", "", gin.H{"username": username, "password": "password123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %q: expected 201, got %d: %s", username, w.Code, w.Body.String())
	}

	w = doJSON(t, r, "POST", "/api/auth/login", "", gin.H{"username": username, "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %q: expected 200, got %d: %s", username, w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.Data.Token
}

// makeProject creates a project and returns its id.
func makeProject(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doJSON(t, r, "POST", "/api/projects", token, gin.H{"name": name, "description": "d"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode project response: %v", err)
	}
	return resp.Data.ID
}
