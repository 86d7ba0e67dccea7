package services

import (
	"errors"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token    string          `json:"token"`
	User     models.UserInfo `json:"user"`
	ExpireAt time.Time       `json:"expire_at"`
}

// Register creates a new local account. A duplicate username is reported as a
// field-level validation error, matching the missing/malformed-field cases
// the binding layer already produces.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewFieldError("username", "a user with that username already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: req.Username,
		Password: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique index races with a concurrent registration of the same name.
		return nil, response.NewFieldError("username", "a user with that username already exists")
	}

	return &user, nil
}

// Login authenticates a user and returns a signed token. Wrong username and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid username or password")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		User:     user.Info(),
		ExpireAt: time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
