package domain

import "time"

// WorkspaceStatus is the administrative status of a tenant.
type WorkspaceStatus string

const (
	WorkspaceActive    WorkspaceStatus = "ACTIVE"
	WorkspaceSuspended WorkspaceStatus = "SUSPENDED"
	WorkspaceCancelled WorkspaceStatus = "CANCELLED"
)

// IsValid reports whether s is a known workspace status.
func (s WorkspaceStatus) IsValid() bool {
	switch s {
	case WorkspaceActive, WorkspaceSuspended, WorkspaceCancelled:
		return true
	}
	return false
}

// Workspace is the tenant boundary. It has exactly one owner and owns every
// patient, procedure, collaborator, sale, session and cost.
type Workspace struct {
	WorkspaceID string          `json:"workspaceID" db:"workspace_id"`
	Name        string          `json:"name" db:"name"`
	OwnerUserID string          `json:"ownerUserID" db:"owner_user_id"`
	Status      WorkspaceStatus `json:"status" db:"status"`
	AuditFields
}

// Impersonation is the decoded content of a MASTER impersonation cookie.
type Impersonation struct {
	WorkspaceID   string
	WorkspaceName string
	MasterUserID  string
	ExpiresAt     time.Time
}

// ActiveAt reports whether the impersonation has not yet expired at now.
func (i *Impersonation) ActiveAt(now time.Time) bool {
	return i != nil && i.WorkspaceID != "" && now.Before(i.ExpiresAt)
}

// WorkspaceFilter narrows the MASTER console listing.
type WorkspaceFilter struct {
	Status *WorkspaceStatus
	Search string
	Limit  int
	Offset int
}
