package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"churchbook_backend/internals/constants"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	"churchbook_backend/internals/features/users/users/dto"
	"churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository"
	"churchbook_backend/internals/repository/memory"
)

type fixture struct {
	ctx    context.Context
	store  *memory.Store
	church *churchModel.ChurchModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memory.New()}
	f.church = &churchModel.ChurchModel{Name: "사랑의교회"}
	require.NoError(t, f.store.CreateChurch(f.ctx, f.church))
	return f
}

func (f *fixture) user(t *testing.T, name string, role constants.Role) *model.UserModel {
	t.Helper()
	pw := "hash"
	u := &model.UserModel{ChurchID: f.church.ID, Name: name, Role: role, Rank: constants.RankSaint}
	if role.IsAtLeast(constants.RoleLeader) {
		u.Password = &pw
	}
	require.NoError(t, f.store.CreateUser(f.ctx, u))
	return u
}

func (f *fixture) cell(t *testing.T, leader *model.UserModel, groupID *uuid.UUID) *cellModel.CellModel {
	t.Helper()
	name := cellModel.CellName(leader.Name)
	if _, err := f.store.FindCellByName(f.ctx, f.church.ID, name); err == nil {
		name += uuid.NewString()[:4]
	}
	c := &cellModel.CellModel{ChurchID: f.church.ID, GroupID: groupID, LeaderID: leader.ID, Name: name}
	require.NoError(t, f.store.CreateCell(f.ctx, c))
	model.JoinCell(leader, c.ID)
	require.NoError(t, f.store.SaveUser(f.ctx, leader))
	return c
}

func (f *fixture) group(t *testing.T, name string, leader, sub *model.UserModel) *groupModel.GroupModel {
	t.Helper()
	g := &groupModel.GroupModel{ChurchID: f.church.ID, Name: name, LeaderID: leader.ID}
	if sub != nil {
		g.SubLeaderID = &sub.ID
	}
	require.NoError(t, f.store.CreateGroup(f.ctx, g))
	return g
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *model.UserModel {
	t.Helper()
	u, err := f.store.FindUser(f.ctx, f.church.ID, id)
	require.NoError(t, err)
	return u
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, status, fe.Code)
}

func TestUserService_CreateDefaultsAndDuplicate(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)

	u, err := svc.Create(f.ctx, f.church.ID, dto.CreateUserRequest{Name: "  홍길동 "})
	require.NoError(t, err)
	assert.Equal(t, "홍길동", u.Name)
	assert.Equal(t, constants.RoleNewbie, u.Role)
	assert.Equal(t, constants.RankSaint, u.Rank)

	_, err = svc.Create(f.ctx, f.church.ID, dto.CreateUserRequest{Name: "홍길동"})
	requireStatus(t, err, fiber.StatusConflict)

	_, err = svc.Create(f.ctx, uuid.New(), dto.CreateUserRequest{Name: "김철수"})
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestUserService_CreateRejectsAssignedRoles(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)

	for _, r := range []constants.Role{constants.RoleLeader, constants.RoleFamilyLeader, constants.RoleSubFamilyLeader} {
		_, err := svc.Create(f.ctx, f.church.ID, dto.CreateUserRequest{Name: "김" + r.Key(), Role: r})
		requireStatus(t, err, fiber.StatusBadRequest)
	}
}

func TestUserService_FindAllFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	f.user(t, "김가", constants.RoleMember)
	f.user(t, "김나", constants.RoleNewbie)
	f.user(t, "이다", constants.RoleMember)

	member := constants.RoleMember
	rows, total, err := svc.FindAll(f.ctx, f.church.ID, repository.UserFilter{Role: &member}, repository.Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	rows, total, err = svc.FindAll(f.ctx, f.church.ID, repository.UserFilter{NamePrefix: "김"}, repository.Page{Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "김가", rows[0].Name)
}

func TestUserService_UpdateMovesMemberBetweenCells(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	c := f.cell(t, leader, nil)
	m := f.user(t, "최셀원", constants.RoleMember)

	u, err := svc.Update(f.ctx, f.church.ID, m.ID, dto.UpdateUserRequest{CellID: &c.ID})
	require.NoError(t, err)
	assert.True(t, u.InCell(c.ID))

	u, err = svc.Update(f.ctx, f.church.ID, m.ID, dto.UpdateUserRequest{ClearCell: true})
	require.NoError(t, err)
	assert.Nil(t, u.CellID)

	missing := uuid.New()
	_, err = svc.Update(f.ctx, f.church.ID, m.ID, dto.UpdateUserRequest{CellID: &missing})
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestUserService_UpdateRejectsLeaderCellMove(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	f.cell(t, leader, nil)

	_, err := svc.Update(f.ctx, f.church.ID, leader.ID, dto.UpdateUserRequest{ClearCell: true})
	requireStatus(t, err, fiber.StatusBadRequest)
	assert.NotNil(t, f.reload(t, leader.ID).CellID)
}

func TestUserService_DeleteGuardsLeaders(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	leader := f.user(t, "박셀장", constants.RoleLeader)
	f.cell(t, leader, nil)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	f.group(t, "은혜팸", head, nil)
	plain := f.user(t, "최셀원", constants.RoleMember)

	requireStatus(t, svc.Delete(f.ctx, f.church.ID, leader.ID), fiber.StatusBadRequest)
	requireStatus(t, svc.Delete(f.ctx, f.church.ID, head.ID), fiber.StatusBadRequest)
	require.NoError(t, svc.Delete(f.ctx, f.church.ID, plain.ID))

	_, err := f.store.FindUser(f.ctx, f.church.ID, plain.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserService_ChangeRole(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	newbie := f.user(t, "신입", constants.RoleNewbie)

	_, err := svc.ChangeRole(f.ctx, f.church.ID, newbie.ID, constants.RoleLeader)
	requireStatus(t, err, fiber.StatusBadRequest)

	u, err := svc.ChangeRole(f.ctx, f.church.ID, newbie.ID, constants.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleMember, u.Role)

	leader := f.user(t, "박셀장", constants.RoleLeader)
	f.cell(t, leader, nil)
	_, err = svc.ChangeRole(f.ctx, f.church.ID, leader.ID, constants.RoleMember)
	requireStatus(t, err, fiber.StatusBadRequest)
	assert.Equal(t, constants.RoleLeader, f.reload(t, leader.ID).Role)

	u, err = svc.ChangeRole(f.ctx, f.church.ID, leader.ID, constants.RoleJuniorPastor)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleJuniorPastor, u.Role)
}

func TestUserService_SetPassword(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	member := f.user(t, "최셀원", constants.RoleMember)
	leader := f.user(t, "박셀장", constants.RoleLeader)

	requireStatus(t, svc.SetPassword(f.ctx, f.church.ID, member.ID, "password123"), fiber.StatusBadRequest)

	require.NoError(t, svc.SetPassword(f.ctx, f.church.ID, leader.ID, "password123"))
	got := f.reload(t, leader.ID)
	require.True(t, got.HasPassword())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*got.Password), []byte("password123")))
}

func TestUserService_UpdateNameRenamesLedCell(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	leader := f.user(t, "홍길동", constants.RoleLeader)
	c := f.cell(t, leader, nil)

	newName := "김철수"
	_, err := svc.Update(f.ctx, f.church.ID, leader.ID, dto.UpdateUserRequest{Name: &newName})
	require.NoError(t, err)

	got, err := f.store.FindCell(f.ctx, f.church.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "김철수셀", got.Name)

	// the old name is free again for a new leader
	_, err = f.store.FindCellByName(f.ctx, f.church.ID, "홍길동셀")
	assert.True(t, repository.IsNotFound(err))
}

func TestUserService_UpdateNameRejectsCellNameClash(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.store)
	leader := f.user(t, "홍길동", constants.RoleLeader)
	c := f.cell(t, leader, nil)
	other := f.user(t, "이영희", constants.RoleLeader)
	taken := &cellModel.CellModel{ChurchID: f.church.ID, LeaderID: other.ID, Name: "김철수셀"}
	require.NoError(t, f.store.CreateCell(f.ctx, taken))

	newName := "김철수"
	_, err := svc.Update(f.ctx, f.church.ID, leader.ID, dto.UpdateUserRequest{Name: &newName})
	requireStatus(t, err, fiber.StatusConflict)

	assert.Equal(t, "홍길동", f.reload(t, leader.ID).Name)
	got, err := f.store.FindCell(f.ctx, f.church.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "홍길동셀", got.Name)
}
