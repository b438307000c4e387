package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchbook_backend/internals/constants"
	churchModel "churchbook_backend/internals/features/churches/churches/model"
	"churchbook_backend/internals/features/communities/cells/dto"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository"
	"churchbook_backend/internals/repository/memory"
)

type fixture struct {
	ctx    context.Context
	store  *memory.Store
	svc    *CellService
	church *churchModel.ChurchModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memory.New()}
	f.svc = NewCellService(f.store)
	f.church = &churchModel.ChurchModel{Name: "사랑의교회"}
	require.NoError(t, f.store.CreateChurch(f.ctx, f.church))
	return f
}

func (f *fixture) user(t *testing.T, name string, role constants.Role) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{ChurchID: f.church.ID, Name: name, Role: role, Rank: constants.RankSaint}
	if role.IsAtLeast(constants.RoleLeader) {
		pw := "hash"
		u.Password = &pw
	}
	require.NoError(t, f.store.CreateUser(f.ctx, u))
	return u
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) *userModel.UserModel {
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

func TestSave_PromotesMemberAndJoinsCell(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "홍길동", constants.RoleMember)

	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, "홍길동셀", d.Cell.Name)
	assert.Equal(t, m.ID, d.Cell.LeaderID)
	assert.Nil(t, d.Cell.GroupID)

	got := f.reload(t, m.ID)
	assert.Equal(t, constants.RoleLeader, got.Role)
	assert.True(t, got.InCell(d.Cell.ID))
}

func TestSave_NeverDemotesHigherRole(t *testing.T) {
	f := newFixture(t)
	pastor := f.user(t, "김목사", constants.RolePastor)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)

	_, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: pastor.ID})
	require.NoError(t, err)
	_, err = f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: head.ID})
	require.NoError(t, err)

	assert.Equal(t, constants.RolePastor, f.reload(t, pastor.ID).Role)
	assert.Equal(t, constants.RoleFamilyLeader, f.reload(t, head.ID).Role)
}

func TestSave_Rejections(t *testing.T) {
	f := newFixture(t)
	newbie := f.user(t, "신입", constants.RoleNewbie)
	m := f.user(t, "홍길동", constants.RoleMember)

	_, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: newbie.ID})
	requireStatus(t, err, fiber.StatusBadRequest)
	assert.Equal(t, constants.RoleNewbie, f.reload(t, newbie.ID).Role)

	_, err = f.svc.Save(f.ctx, uuid.New(), dto.CreateCellRequest{LeaderID: m.ID})
	requireStatus(t, err, fiber.StatusNotFound)

	missing := uuid.New()
	_, err = f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: m.ID, GroupID: &missing})
	requireStatus(t, err, fiber.StatusNotFound)

	_, err = f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: uuid.New()})
	requireStatus(t, err, fiber.StatusNotFound)

	assert.Equal(t, constants.RoleMember, f.reload(t, m.ID).Role)
}

func TestSave_UserFromOtherChurchIsNotFound(t *testing.T) {
	f := newFixture(t)
	other := &churchModel.ChurchModel{Name: "소망교회"}
	require.NoError(t, f.store.CreateChurch(f.ctx, other))
	u := &userModel.UserModel{ChurchID: other.ID, Name: "외부인", Role: constants.RoleMember, Rank: constants.RankSaint}
	require.NoError(t, f.store.CreateUser(f.ctx, u))

	_, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: u.ID})
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestUpdate_NoChangeIsNoOp(t *testing.T) {
	f := newFixture(t)
	m := f.user(t, "홍길동", constants.RoleMember)
	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: m.ID})
	require.NoError(t, err)
	before := f.reload(t, m.ID)

	got, err := f.svc.Update(f.ctx, f.church.ID, d.Cell.ID, dto.UpdateCellRequest{LeaderID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, d.Cell.Name, got.Cell.Name)
	assert.Equal(t, before.UpdatedAt, f.reload(t, m.ID).UpdatedAt)
}

func TestUpdate_ReplacesLeader(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "홍길동", constants.RoleMember)
	b := f.user(t, "김철수", constants.RoleMember)
	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: a.ID})
	require.NoError(t, err)

	got, err := f.svc.Update(f.ctx, f.church.ID, d.Cell.ID, dto.UpdateCellRequest{LeaderID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, "김철수셀", got.Cell.Name)
	assert.Equal(t, b.ID, got.Cell.LeaderID)

	prev := f.reload(t, a.ID)
	assert.Equal(t, constants.RoleMember, prev.Role)
	assert.Nil(t, prev.CellID)
	assert.Nil(t, prev.Password)

	next := f.reload(t, b.ID)
	assert.Equal(t, constants.RoleLeader, next.Role)
	assert.True(t, next.InCell(d.Cell.ID))
}

func TestUpdate_PreviousLeaderOfAnotherCellKeepsRoleAndPassword(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "홍길동", constants.RoleLeader)
	b := f.user(t, "김철수", constants.RoleMember)

	first, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: a.ID})
	require.NoError(t, err)
	// second cell led by a under a different name
	second := *first.Cell
	second.ID = uuid.Nil
	second.Name = "홍길동2셀"
	require.NoError(t, f.store.CreateCell(f.ctx, &second))

	_, err = f.svc.Update(f.ctx, f.church.ID, first.Cell.ID, dto.UpdateCellRequest{LeaderID: b.ID})
	require.NoError(t, err)

	got := f.reload(t, a.ID)
	assert.Equal(t, constants.RoleLeader, got.Role)
	require.NotNil(t, got.Password)
	assert.Equal(t, "hash", *got.Password)
	assert.True(t, got.InCell(second.ID))
}

func TestUpdate_GroupOnly(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "홍길동", constants.RoleMember)
	head := f.user(t, "정팸장", constants.RoleFamilyLeader)
	g := &groupModel.GroupModel{ChurchID: f.church.ID, Name: "은혜팸", LeaderID: head.ID}
	require.NoError(t, f.store.CreateGroup(f.ctx, g))

	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: a.ID})
	require.NoError(t, err)

	got, err := f.svc.Update(f.ctx, f.church.ID, d.Cell.ID, dto.UpdateCellRequest{LeaderID: a.ID, GroupID: &g.ID})
	require.NoError(t, err)
	assert.True(t, got.Cell.InGroup(g.ID))
	require.NotNil(t, got.Group)
	assert.Equal(t, "은혜팸", got.Group.Name)
	assert.Equal(t, constants.RoleLeader, f.reload(t, a.ID).Role)
}

func TestDelete_GuardsMembers(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "홍길동", constants.RoleMember)
	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: a.ID})
	require.NoError(t, err)

	m := f.user(t, "최셀원", constants.RoleMember)
	userModel.JoinCell(m, d.Cell.ID)
	require.NoError(t, f.store.SaveUser(f.ctx, m))

	requireStatus(t, f.svc.Delete(f.ctx, f.church.ID, d.Cell.ID), fiber.StatusBadRequest)
	_, err = f.store.FindCell(f.ctx, f.church.ID, d.Cell.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleLeader, f.reload(t, a.ID).Role)

	userModel.LeaveCell(m)
	require.NoError(t, f.store.SaveUser(f.ctx, m))

	require.NoError(t, f.svc.Delete(f.ctx, f.church.ID, d.Cell.ID))
	_, err = f.store.FindCell(f.ctx, f.church.ID, d.Cell.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got := f.reload(t, a.ID)
	assert.Equal(t, constants.RoleMember, got.Role)
	assert.Nil(t, got.CellID)
}

func TestFindByID_ListsMembersWithoutLeader(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "홍길동", constants.RoleMember)
	d, err := f.svc.Save(f.ctx, f.church.ID, dto.CreateCellRequest{LeaderID: a.ID})
	require.NoError(t, err)
	m := f.user(t, "최셀원", constants.RoleMember)
	userModel.JoinCell(m, d.Cell.ID)
	require.NoError(t, f.store.SaveUser(f.ctx, m))

	got, err := f.svc.FindByID(f.ctx, f.church.ID, d.Cell.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, m.ID, got.Members[0].ID)
	resp := got.Response(true)
	assert.Equal(t, 1, resp.MemberCount)
	require.NotNil(t, resp.Leader)
	assert.Equal(t, "셀장", resp.Leader.RoleName)
}
