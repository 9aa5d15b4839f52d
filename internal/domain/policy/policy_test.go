package policy

import (
	"testing"

	"backoffice/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy_AgentCannotSetGreen(t *testing.T) {
	p := Default()

	assert.True(t, p.AllowsDirect(entity.RoleAgent, entity.StatusReserved))
	assert.False(t, p.AllowsDirect(entity.RoleAgent, entity.StatusGreen))
	assert.False(t, p.AllowsDirect(entity.RoleAgent, entity.StatusSold))
}

func TestDefaultPolicy_ManagerSetsEverything(t *testing.T) {
	p := Default()

	for _, status := range entity.AllListingStatuses() {
		assert.True(t, p.AllowsDirect(entity.RoleManager, status), "manager should set %s", status)
		assert.True(t, p.AllowsDirect(entity.RoleCEO, status), "ceo should set %s", status)
	}
}

func TestDefaultPolicy_TeamLeadCannotClose(t *testing.T) {
	p := Default()

	assert.True(t, p.AllowsDirect(entity.RoleTeamLead, entity.StatusGreen))
	assert.False(t, p.AllowsDirect(entity.RoleTeamLead, entity.StatusSold))
}

func TestPolicy_UnknownRoleDeniedEverywhere(t *testing.T) {
	p := Default()

	for _, status := range entity.AllListingStatuses() {
		assert.False(t, p.AllowsDirect(entity.Role("visitor"), status))
	}
}

func TestFromTable_FiltersUnknownValues(t *testing.T) {
	p := FromTable(map[string][]string{
		"agent":   {"WHITE", "PURPLE", "GREEN"},
		"visitor": {"WHITE"},
	})

	assert.True(t, p.AllowsDirect(entity.RoleAgent, entity.StatusWhite))
	assert.True(t, p.AllowsDirect(entity.RoleAgent, entity.StatusGreen))
	assert.False(t, p.AllowsDirect(entity.RoleAgent, entity.ListingStatus("PURPLE")))
	assert.NotContains(t, p, entity.Role("visitor"))
}

func TestFromTable_EmptyFallsBackToDefault(t *testing.T) {
	p := FromTable(nil)

	assert.True(t, p.AllowsDirect(entity.RoleManager, entity.StatusSold))
	assert.False(t, p.AllowsDirect(entity.RoleAgent, entity.StatusGreen))
}

func TestCanDecide_MatchesDirectWrite(t *testing.T) {
	p := Default()

	assert.True(t, p.CanDecide(entity.RoleManager, entity.StatusGreen))
	assert.False(t, p.CanDecide(entity.RoleAgent, entity.StatusGreen))
}
