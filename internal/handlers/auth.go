package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.JWT),
	}
}

// Register creates a new account.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// No automatic login: the caller exchanges credentials separately.
	response.Created(c, user.Info())
}

// Login exchanges credentials for a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, bindingFields(err))
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Me returns the authenticated principal's id and username.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		response.Unauthorized(c, "authentication required")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user.Info())
}

// Logout acknowledges a client-side token drop.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "logged out successfully"})
}
