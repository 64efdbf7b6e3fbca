package dto

import (
	"time"

	"github.com/yigit/benchtrack/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"priya@bench.example"`
	Password string `json:"password" binding:"required" example:"Password123"`
}

// RegisterRequest creates a user account. Consultants also get a profile.
type RegisterRequest struct {
	Name       string          `json:"name" binding:"required,min=2,max=100" example:"Priya Raman"`
	Email      string          `json:"email" binding:"required,email" example:"priya@bench.example"`
	Password   string          `json:"password" binding:"required,min=8,password" example:"Password123"`
	Role       models.RoleType `json:"role" binding:"omitempty,oneof=consultant admin" example:"consultant"`
	Department string          `json:"department" binding:"omitempty,max=100" example:"Engineering"`
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn" example:"3600"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID           int64      `json:"id" example:"1"`
	Name         string     `json:"name" example:"Priya Raman"`
	Email        string     `json:"email" example:"priya@bench.example"`
	Role         string     `json:"role" example:"consultant"`
	Department   *string    `json:"department,omitempty"`
	ConsultantID *int64     `json:"consultantId,omitempty" example:"4"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse builds a UserResponse
func NewUserResponse(user *models.User, consultantID *int64) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		Department:   user.Department,
		ConsultantID: consultantID,
		LastLoginAt:  user.LastLoginAt,
		CreatedAt:    user.CreatedAt,
	}
}

// LogoutRequest optionally names the refresh token to revoke. Without one
// every token of the caller is revoked.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}
