package dto

import "connect-backend/internal/user/domain"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type EditRequest struct {
	ID        string `json:"id"`
	Username  string `json:"username" binding:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type FollowRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
}

// AuthResponse always carries the pair together; neither token is ever
// returned on its own.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the outward projection of a user record.
type UserResponse struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Following []string `json:"following"`
	Followers []string `json:"followers"`
}

func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		Role:      string(user.Role),
		Following: append([]string{}, user.Following...),
		Followers: append([]string{}, user.Followers...),
	}
}
