package domain

import "time"

// SessionStatus is the attendance status of a scheduled procedure session.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "SCHEDULED"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
	SessionNoShow    SessionStatus = "NO_SHOW"
)

// IsValid reports whether s is a known session status.
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether a session in status s may move to next.
// A scheduled session can be closed in any way; a no-show can be rebooked.
// Completed and cancelled sessions are final.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch s {
	case SessionScheduled:
		return next == SessionCompleted || next == SessionCancelled || next == SessionNoShow
	case SessionNoShow:
		return next == SessionScheduled
	}
	return false
}

// ProcedureSession is one scheduled execution of a procedure for a patient.
type ProcedureSession struct {
	SessionID      string        `json:"sessionID" db:"session_id"`
	WorkspaceID    string        `json:"workspaceID" db:"workspace_id"`
	PatientID      string        `json:"patientID" db:"patient_id"`
	ProcedureID    string        `json:"procedureID" db:"procedure_id"`
	CollaboratorID *string       `json:"collaboratorID,omitempty" db:"collaborator_id"`
	SaleID         *string       `json:"saleID,omitempty" db:"sale_id"`
	ScheduledAt    time.Time     `json:"scheduledAt" db:"scheduled_at"`
	Status         SessionStatus `json:"status" db:"status"`
	Notes          string        `json:"notes" db:"notes"`
	AuditFields
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	Period         Period
	Status         *SessionStatus
	PatientID      string
	CollaboratorID string
	Limit          int
	Offset         int
}

// AttendanceStats summarizes session outcomes over a period.
type AttendanceStats struct {
	Total          int     `json:"total"`
	Scheduled      int     `json:"scheduled"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	NoShow         int     `json:"noShow"`
	AttendanceRate float64 `json:"attendanceRate"` // completed / (completed + noShow)
}
