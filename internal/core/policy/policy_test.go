package policy_test

import (
	"testing"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
	"github.com/stretchr/testify/assert"
)

func TestWriteImpliesAccess(t *testing.T) {
	for _, role := range domain.AllRoles {
		for _, res := range policy.Resources {
			if policy.CanWrite(role, res) {
				assert.Truef(t, policy.CanAccess(role, res), "%s can write %s without read access", role, res)
			}
		}
	}
}

func TestEveryResourceHasAReader(t *testing.T) {
	for _, res := range policy.Resources {
		readable := false
		for _, role := range domain.AllRoles {
			readable = readable || policy.CanAccess(role, res)
		}
		assert.Truef(t, readable, "resource %s is unreachable", res)
	}
}

func TestRoleRules(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		resource policy.Resource
		read     bool
		write    bool
	}{
		{"receptionist reads patients", domain.RoleReceptionist, policy.Patients, true, false},
		{"receptionist schedules sessions", domain.RoleReceptionist, policy.Sessions, true, true},
		{"receptionist has no costs", domain.RoleReceptionist, policy.Costs, false, false},
		{"manager denied costs", domain.RoleManager, policy.Costs, false, false},
		{"manager denied settings", domain.RoleManager, policy.Settings, false, false},
		{"manager edits collaborators", domain.RoleManager, policy.Collaborators, true, true},
		{"user reads procedures only", domain.RoleUser, policy.Procedures, true, false},
		{"user writes sales", domain.RoleUser, policy.Sales, true, true},
		{"admin writes costs", domain.RoleAdmin, policy.Costs, true, true},
		{"admin has no master console", domain.RoleAdmin, policy.Master, false, false},
		{"master console", domain.RoleMaster, policy.Master, true, true},
		{"commissions are read only", domain.RoleAdmin, policy.Commissions, true, false},
		{"unknown resource", domain.RoleMaster, policy.Resource("nope"), false, false},
		{"unknown role", domain.Role("GUEST"), policy.Patients, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.read, policy.CanAccess(tt.role, tt.resource))
			assert.Equal(t, tt.write, policy.CanWrite(tt.role, tt.resource))
		})
	}
}

func TestMatrixFollowsResourceOrder(t *testing.T) {
	m := policy.Matrix(domain.RoleReceptionist)
	assert.Len(t, m, len(policy.Resources))
	for i, p := range m {
		assert.Equal(t, policy.Resources[i], p.Resource)
		assert.Equal(t, policy.CanAccess(domain.RoleReceptionist, p.Resource), p.Read)
		assert.Equal(t, policy.CanWrite(domain.RoleReceptionist, p.Resource), p.Write)
	}
}
