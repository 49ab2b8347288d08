package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// User is an account that can belong to any number of families
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `json:"username" gorm:"uniqueIndex"`
	Email          string    `json:"email"`
	Role           string    `json:"role" gorm:"default:member"`
	Password       string    `json:"password,omitempty" gorm:"-"`
	HashedPassword string    `json:"-" gorm:"column:hashed_password"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the response body for a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
