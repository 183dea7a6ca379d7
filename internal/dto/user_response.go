package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

type UserResponse struct {
	UserID      string      `json:"userID"`
	Email       string      `json:"email"`
	FullName    string      `json:"fullName"`
	Role        domain.Role `json:"role"`
	WorkspaceID *string     `json:"workspaceID,omitempty"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		WorkspaceID: user.WorkspaceID,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to a slice of UserResponse DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
