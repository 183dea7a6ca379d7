package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// WorkspaceResponse defines the data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID   string                 `json:"workspaceID"`
	Name          string                 `json:"name"`
	OwnerUserID   string                 `json:"ownerUserID"`
	Status        domain.WorkspaceStatus `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:   w.WorkspaceID,
		Name:          w.Name,
		OwnerUserID:   w.OwnerUserID,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
		LastUpdatedAt: w.LastUpdatedAt,
	}
}

// ToWorkspaceResponsePtr is ToWorkspaceResponse for optional workspaces.
func ToWorkspaceResponsePtr(w *domain.Workspace) *WorkspaceResponse {
	if w == nil {
		return nil
	}
	resp := ToWorkspaceResponse(w)
	return &resp
}

func ToListWorkspaceResponse(workspaces []domain.Workspace) []WorkspaceResponse {
	res := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		res[i] = ToWorkspaceResponse(&workspaces[i])
	}
	return res
}

// UpdateWorkspaceRequest renames the caller's workspace.
type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateWorkspaceStatusRequest is the MASTER console status change.
type UpdateWorkspaceStatusRequest struct {
	Status domain.WorkspaceStatus `json:"status" binding:"required,oneof=ACTIVE SUSPENDED CANCELLED"`
}

// ListWorkspacesParams defines query parameters for the MASTER console listing.
type ListWorkspacesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED CANCELLED"`
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListWorkspacesParams) ToFilter() domain.WorkspaceFilter {
	f := domain.WorkspaceFilter{Search: p.Search, Limit: p.Limit, Offset: p.Offset}
	if p.Status != "" {
		s := domain.WorkspaceStatus(p.Status)
		f.Status = &s
	}
	return f
}

// StartImpersonationRequest names the workspace a MASTER wants to act in.
type StartImpersonationRequest struct {
	WorkspaceID string `json:"workspaceID" binding:"required"`
}

// ImpersonationResponse describes the current impersonation state.
type ImpersonationResponse struct {
	Active        bool       `json:"active"`
	WorkspaceID   string     `json:"workspaceID,omitempty"`
	WorkspaceName string     `json:"workspaceName,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func ToImpersonationResponse(imp *domain.Impersonation) ImpersonationResponse {
	if imp == nil {
		return ImpersonationResponse{}
	}
	exp := imp.ExpiresAt
	return ImpersonationResponse{
		Active:        true,
		WorkspaceID:   imp.WorkspaceID,
		WorkspaceName: imp.WorkspaceName,
		ExpiresAt:     &exp,
	}
}
