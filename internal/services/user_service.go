package services

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/familychef/familychef/internal/auth"
	"github.com/familychef/familychef/internal/models"
)

// UserService defines the interface for user-related operations
type UserService interface {
	GetVisibleUsers(ac auth.Context) ([]models.User, error)
	GetUserByUsername(username string) (models.User, error)
	GetUserIDByUsername(username string) (uint, error)
	CreateUser(user models.User) (models.User, error)
	IsUserAdmin(userID uint) (bool, error)
}

// userService implements the UserService interface
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) UserService {
	return &userService{
		db: db,
	}
}

// GetVisibleUsers returns the users sharing at least one family with the caller
func (s *userService) GetVisibleUsers(ac auth.Context) ([]models.User, error) {
	var userIDs []uint
	result := s.db.Model(&models.FamilyMember{}).
		Where("family_id IN ?", ac.FamilyIDs).
		Distinct().Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}

	var users []models.User
	result = s.db.Select("id, username, email, role").Where("id IN ?", userIDs).Find(&users)
	return users, result.Error
}

// GetUserByUsername returns a user by username
func (s *userService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	result := s.db.Where("username = ?", username).First(&user)
	return user, result.Error
}

// GetUserIDByUsername retrieves a user's ID by their username
func (s *userService) GetUserIDByUsername(username string) (uint, error) {
	var user models.User
	result := s.db.Select("id").Where("username = ?", username).First(&user)
	if result.Error != nil {
		return 0, result.Error
	}
	return user.ID, nil
}

// CreateUser creates a new user, hashing the supplied password
func (s *userService) CreateUser(user models.User) (models.User, error) {
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	result := s.db.Create(&user)
	return user, result.Error
}

// IsUserAdmin checks if a user has admin role
func (s *userService) IsUserAdmin(userID uint) (bool, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return false, err
	}

	return user.Role == "admin", nil
}
