package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchbook_backend/internals/constants"
)

func TestReleaseCellLeader_PutsDownSoleLeader(t *testing.T) {
	f := newFixture(t)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	c := f.cell(t, leader, nil)

	require.NoError(t, ReleaseCellLeader(f.ctx, f.store, leader, c.ID))

	got := f.reload(t, leader.ID)
	assert.Equal(t, constants.RoleMember, got.Role)
	assert.Nil(t, got.CellID)
	assert.Nil(t, got.Password)
}

func TestReleaseCellLeader_KeepsLeaderOfAnotherCell(t *testing.T) {
	f := newFixture(t)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	first := f.cell(t, leader, nil)
	second := f.cell(t, leader, nil)

	require.NoError(t, ReleaseCellLeader(f.ctx, f.store, leader, first.ID))

	got := f.reload(t, leader.ID)
	assert.Equal(t, constants.RoleLeader, got.Role)
	assert.True(t, got.HasPassword())
	assert.True(t, got.InCell(second.ID))
}

func TestReleaseCellLeader_KeepsFamilyRoleWhileHeadingGroup(t *testing.T) {
	f := newFixture(t)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	g := f.group(t, "은혜팸", head, nil)
	c := f.cell(t, head, &g.ID)

	require.NoError(t, ReleaseCellLeader(f.ctx, f.store, head, c.ID))

	got := f.reload(t, head.ID)
	assert.Equal(t, constants.RoleFamilyLeader, got.Role)
	assert.Nil(t, got.CellID)
	assert.True(t, got.HasPassword())
}

func TestReleaseCellLeader_StaffUnchanged(t *testing.T) {
	f := newFixture(t)
	pastor := f.user(t, "김목사", constants.RolePastor)
	c := f.cell(t, pastor, nil)

	require.NoError(t, ReleaseCellLeader(f.ctx, f.store, pastor, c.ID))

	got := f.reload(t, pastor.ID)
	assert.Equal(t, constants.RolePastor, got.Role)
	assert.True(t, got.HasPassword())
}

func TestRevertFamilyLeader_FallsBackToCellLeader(t *testing.T) {
	f := newFixture(t)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	g := f.group(t, "은혜팸", head, nil)
	c := f.cell(t, head, &g.ID)

	require.NoError(t, RevertFamilyLeader(f.ctx, f.store, head, g.ID))

	got := f.reload(t, head.ID)
	assert.Equal(t, constants.RoleLeader, got.Role)
	assert.True(t, got.InCell(c.ID))

	cell, err := f.store.FindCell(f.ctx, f.church.ID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, cell.GroupID)
}

func TestRevertFamilyLeader_KeepsRoleFromOtherGroup(t *testing.T) {
	f := newFixture(t)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	other := f.user(t, "한팸장", constants.RoleFamilyLeader)
	f.group(t, "믿음팸", other, head)
	g := f.group(t, "은혜팸", head, nil)

	require.NoError(t, RevertFamilyLeader(f.ctx, f.store, head, g.ID))
	assert.Equal(t, constants.RoleSubFamilyLeader, f.reload(t, head.ID).Role)
}

func TestRevertFamilyLeader_PutsDownWhenNothingLeft(t *testing.T) {
	f := newFixture(t)
	sub := f.user(t, "부팸장", constants.RoleSubFamilyLeader)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	g := f.group(t, "은혜팸", head, sub)

	require.NoError(t, RevertFamilyLeader(f.ctx, f.store, sub, g.ID))

	got := f.reload(t, sub.ID)
	assert.Equal(t, constants.RoleMember, got.Role)
	assert.Nil(t, got.Password)
	assert.Nil(t, got.CellID)
}

func TestAssignFamilyLeader_LinksLedCells(t *testing.T) {
	f := newFixture(t)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	c := f.cell(t, leader, nil)
	g := f.group(t, "은혜팸", leader, nil)

	require.NoError(t, AssignFamilyLeader(f.ctx, f.store, leader, g.ID))

	assert.Equal(t, constants.RoleFamilyLeader, f.reload(t, leader.ID).Role)
	cell, err := f.store.FindCell(f.ctx, f.church.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, cell.InGroup(g.ID))

	ok, err := LeadsAnyGroup(f.ctx, f.store, leader.ID, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = LeadsAnyGroup(f.ctx, f.store, leader.ID, g.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
