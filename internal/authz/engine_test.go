package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/crm-service/internal/domain"
)

func snapshotWith(sets ...domain.PermissionSet) *Snapshot {
	return &Snapshot{Found: true, Active: true, UserID: "u1", RoleSets: sets}
}

func TestDecideDeniesMissingUser(t *testing.T) {
	assert.False(t, Decide(nil, domain.PageCases, domain.LevelFullControl))
	assert.False(t, Decide(&Snapshot{}, domain.PageCases, domain.LevelFullControl))
}

func TestDecideDeniesInactiveUser(t *testing.T) {
	snapshot := &Snapshot{
		Found:  true,
		Active: false,
		RoleSets: []domain.PermissionSet{
			domain.ParsePermissionString("Admin:FullControl"),
		},
	}
	assert.False(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
}

func TestDecideDeniesUserWithoutRoles(t *testing.T) {
	assert.False(t, Decide(snapshotWith(), domain.PageCases, domain.LevelReadOnly, domain.LevelFullControl))
}

func TestDecideUnionsAcrossRoles(t *testing.T) {
	snapshot := snapshotWith(
		domain.ParsePermissionString("Dashboard:ReadOnly"),
		domain.ParsePermissionString("Cases:FullControl"),
	)

	assert.True(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
	assert.True(t, Decide(snapshot, domain.PageDashboard, domain.LevelReadOnly))
	assert.False(t, Decide(snapshot, domain.PageUsers, domain.LevelReadOnly, domain.LevelFullControl))
}

func TestDecideLevelMatters(t *testing.T) {
	snapshot := snapshotWith(domain.ParsePermissionString("Cases:ReadOnly"))

	assert.True(t, Decide(snapshot, domain.PageCases, domain.LevelReadOnly, domain.LevelFullControl))
	assert.False(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
}

func TestDecideAdminMasterKey(t *testing.T) {
	snapshot := snapshotWith(domain.ParsePermissionString("Admin:FullControl"))

	assert.True(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
	assert.True(t, Decide(snapshot, domain.PageUsers, domain.LevelFullControl))
	assert.True(t, Decide(snapshot, "SomeFuturePage", domain.LevelFullControl))
}

func TestDecideAdminMasterKeyAnyLevel(t *testing.T) {
	// Even a read-only Admin grant opens every page: the master key
	// check is on page presence, not level.
	snapshot := snapshotWith(domain.ParsePermissionString("Admin:ReadOnly"))
	assert.True(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
}

func TestDecideFirstDuplicateWins(t *testing.T) {
	snapshot := snapshotWith(domain.ParsePermissionString("Cases:ReadOnly,Cases:FullControl"))
	assert.False(t, Decide(snapshot, domain.PageCases, domain.LevelFullControl))
}
