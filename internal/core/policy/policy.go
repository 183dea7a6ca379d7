// Package policy holds the single role/resource permission table consulted by
// the API middleware and served to the UI for menu gating.
package policy

import "github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"

// Resource names an access-controlled area of the product.
type Resource string

const (
	Dashboard     Resource = "dashboard"
	Patients      Resource = "patients"
	Procedures    Resource = "procedures"
	Sessions      Resource = "sessions"
	Sales         Resource = "sales"
	Collaborators Resource = "collaborators"
	Costs         Resource = "costs"
	Commissions   Resource = "commissions"
	Settings      Resource = "settings"
	Users         Resource = "users"
	Master        Resource = "master"
)

// Resources lists every resource in menu order.
var Resources = []Resource{
	Dashboard, Patients, Procedures, Sessions, Sales, Collaborators,
	Costs, Commissions, Settings, Users, Master,
}

var (
	everyone  = roles(domain.RoleMaster, domain.RoleAdmin, domain.RoleManager, domain.RoleUser, domain.RoleReceptionist)
	staff     = roles(domain.RoleMaster, domain.RoleAdmin, domain.RoleManager, domain.RoleUser)
	managers  = roles(domain.RoleMaster, domain.RoleAdmin, domain.RoleManager)
	admins    = roles(domain.RoleMaster, domain.RoleAdmin)
	onlyOwner = roles(domain.RoleMaster)
)

// readAccess maps each resource to the roles allowed to read it.
var readAccess = map[Resource]map[domain.Role]bool{
	Dashboard:     everyone,
	Patients:      everyone,
	Procedures:    everyone,
	Sessions:      everyone,
	Sales:         everyone,
	Collaborators: managers,
	Costs:         admins,
	Commissions:   managers,
	Settings:      admins,
	Users:         admins,
	Master:        onlyOwner,
}

// readOnly lists, per role, the resources it can see but never mutate.
var readOnly = map[domain.Role]map[Resource]bool{
	domain.RoleReceptionist: {Patients: true, Procedures: true, Sales: true},
	domain.RoleUser:         {Procedures: true},
}

// reportOnly resources have no write operations for any role.
var reportOnly = map[Resource]bool{
	Dashboard:   true,
	Commissions: true,
}

func roles(rs ...domain.Role) map[domain.Role]bool {
	m := make(map[domain.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

// CanAccess reports whether role may read resource. Unknown resources are denied.
func CanAccess(role domain.Role, resource Resource) bool {
	return readAccess[resource][role]
}

// CanWrite reports whether role may create, update or delete resource.
// Write access is always a subset of read access.
func CanWrite(role domain.Role, resource Resource) bool {
	if !CanAccess(role, resource) || reportOnly[resource] {
		return false
	}
	return !readOnly[role][resource]
}

// Permission is one row of the matrix served to the UI.
type Permission struct {
	Resource Resource `json:"resource"`
	Read     bool     `json:"read"`
	Write    bool     `json:"write"`
}

// Matrix returns the permissions of role over every resource, in menu order.
func Matrix(role domain.Role) []Permission {
	out := make([]Permission, 0, len(Resources))
	for _, res := range Resources {
		out = append(out, Permission{
			Resource: res,
			Read:     CanAccess(role, res),
			Write:    CanWrite(role, res),
		})
	}
	return out
}
