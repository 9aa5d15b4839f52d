// Package policy holds the role-to-status permission table that decides
// whether a status change is a direct write or must go through an approval
// request. The table is injected, not hard-coded, so deployments can reshape
// it from configuration and tests can exercise arbitrary policies.
package policy

import (
	"slices"

	"backoffice/internal/domain/entity"
)

// StatusPolicy maps each role to the set of statuses it may write directly.
// A role missing from the table may not write any status directly.
type StatusPolicy map[entity.Role][]entity.ListingStatus

// AllowsDirect reports whether role may set status without approval.
func (p StatusPolicy) AllowsDirect(role entity.Role, status entity.ListingStatus) bool {
	return slices.Contains(p[role], status)
}

// CanDecide reports whether role may approve or reject a request targeting
// status. Deciding is the same privilege as writing the status directly.
func (p StatusPolicy) CanDecide(role entity.Role, status entity.ListingStatus) bool {
	return p.AllowsDirect(role, status)
}

// Default returns the shipped permission table: executives and managers set
// any status, team leads everything short of closing a deal, agents only the
// working statuses.
func Default() StatusPolicy {
	return StatusPolicy{
		entity.RoleCEO:     entity.AllListingStatuses(),
		entity.RoleManager: entity.AllListingStatuses(),
		entity.RoleTeamLead: {
			entity.StatusWhite, entity.StatusRed, entity.StatusBlue,
			entity.StatusGreen, entity.StatusReserved,
		},
		entity.RoleAgent: {
			entity.StatusWhite, entity.StatusRed, entity.StatusBlue, entity.StatusReserved,
		},
	}
}

// FromTable builds a StatusPolicy from a plain string table, dropping
// unknown roles and statuses. Used to load the table from configuration.
func FromTable(table map[string][]string) StatusPolicy {
	if len(table) == 0 {
		return Default()
	}

	p := make(StatusPolicy, len(table))
	for roleStr, statuses := range table {
		role := entity.Role(roleStr)
		if !role.IsValid() {
			continue
		}

		allowed := make([]entity.ListingStatus, 0, len(statuses))
		for _, s := range statuses {
			status := entity.ListingStatus(s)
			if status.IsValid() {
				allowed = append(allowed, status)
			}
		}
		p[role] = allowed
	}

	return p
}
