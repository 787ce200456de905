package model

import "github.com/google/uuid"

const (
	RoleOwner      = "OWNER"
	RoleManager    = "MANAGER"
	RoleAccountant = "ACCOUNTANT"
	RoleViewer     = "VIEWER"
)

// Principal is the authenticated caller: a user acting within one
// organization. Every query and command is scoped to OrgID.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   string
}

func (p Principal) IsOwner() bool      { return p.Role == RoleOwner }
func (p Principal) IsManager() bool    { return p.Role == RoleManager }
func (p Principal) IsAccountant() bool { return p.Role == RoleAccountant }
func (p Principal) IsViewer() bool     { return p.Role == RoleViewer }

// CanWrite reports whether the principal may run mutating commands.
func (p Principal) CanWrite() bool {
	return p.Role == RoleOwner || p.Role == RoleManager || p.Role == RoleAccountant
}
