// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the class of principal acting in the back office.
type Role string

const (
	// RoleCEO indicates a top-level executive.
	RoleCEO Role = "ceo"
	// RoleManager indicates a branch manager.
	RoleManager Role = "manager"
	// RoleTeamLead indicates a sales team lead.
	RoleTeamLead Role = "team_lead"
	// RoleAgent indicates a regular listing agent.
	RoleAgent Role = "agent"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCEO, RoleManager, RoleTeamLead, RoleAgent:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
