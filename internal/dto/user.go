package dto

import (
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
)

// UpdateProfileRequest defines the data allowed for updating the caller's profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest requires the current password for verification.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// CreateTeamMemberRequest adds a user to the caller's workspace. When Password
// is empty a random temporary password is generated and returned once.
type CreateTeamMemberRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	FullName string      `json:"fullName" binding:"required,max=255"`
	Role     domain.Role `json:"role" binding:"required,oneof=ADMIN MANAGER USER RECEPTIONIST"`
	Password string      `json:"password" binding:"omitempty,min=8,max=72"`
}

// UpdateTeamMemberRequest changes a member's role or active flag.
type UpdateTeamMemberRequest struct {
	Role     *domain.Role `json:"role" binding:"omitempty,oneof=ADMIN MANAGER USER RECEPTIONIST"`
	IsActive *bool        `json:"isActive"`
}

// TeamMemberCreatedResponse carries the generated password, if any.
type TeamMemberCreatedResponse struct {
	User              UserResponse `json:"user"`
	TemporaryPassword string       `json:"temporaryPassword,omitempty"`
}

// MeResponse is the authenticated caller with the permission matrix of their role.
type MeResponse struct {
	User          UserResponse        `json:"user"`
	Workspace     *WorkspaceResponse  `json:"workspace,omitempty"`
	Impersonating bool                `json:"impersonating"`
	Permissions   []policy.Permission `json:"permissions"`
}

// PermissionsResponse exposes the static policy table for UI gating.
type PermissionsResponse struct {
	Role        domain.Role         `json:"role"`
	Permissions []policy.Permission `json:"permissions"`
}
