package services

import (
	"gorm.io/gorm"

	"github.com/taskhub/backend/internal/models"
)

// findUserByUsername resolves a username to a user record. Registration,
// member addition and assignee resolution all go through here. Returns
// gorm.ErrRecordNotFound unchanged so callers pick their own error mapping.
func findUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
