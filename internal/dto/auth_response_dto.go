package dto

import "time"

// SignupRequest creates an ADMIN user together with the clinic workspace it owns.
type SignupRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	FullName   string `json:"fullName" binding:"required,max=255"`
	ClinicName string `json:"clinicName" binding:"required,max=255"`
}

// LoginRequest represents the request body for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code returned by Google.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login or signup.
// The token is also set as the session cookie.
type LoginResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      UserResponse       `json:"user"`
	Workspace *WorkspaceResponse `json:"workspace,omitempty"`
}
