package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	churchModel "churchbook_backend/internals/features/churches/churches/model"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	userModel "churchbook_backend/internals/features/users/users/model"
)

/* ===================== CHURCHES ===================== */

func (s *GormStore) CreateChurch(ctx context.Context, m *churchModel.ChurchModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create church")
}

func (s *GormStore) SaveChurch(ctx context.Context, m *churchModel.ChurchModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save church")
}

func (s *GormStore) DeleteChurch(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&churchModel.ChurchModel{}, "id = ?", id), "delete church")
}

func (s *GormStore) FindChurch(ctx context.Context, id uuid.UUID) (*churchModel.ChurchModel, error) {
	var m churchModel.ChurchModel
	if err := first(s.conn(ctx).Where("id = ?", id), &m, "find church"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListChurches(ctx context.Context, p Page) ([]churchModel.ChurchModel, int64, error) {
	q := s.conn(ctx).Model(&churchModel.ChurchModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "count churches")
	}
	var rows []churchModel.ChurchModel
	if err := paged(q.Order("created_at ASC"), p).Find(&rows).Error; err != nil {
		return nil, 0, classify(err, "list churches")
	}
	return rows, total, nil
}

/* ===================== USERS ===================== */

func (s *GormStore) CreateUser(ctx context.Context, m *userModel.UserModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create user")
}

// SaveUser writes every column, so cleared pointers (cell_id, password) become NULL.
func (s *GormStore) SaveUser(ctx context.Context, m *userModel.UserModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save user")
}

func (s *GormStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&userModel.UserModel{}, "id = ?", id), "delete user")
}

func (s *GormStore) FindUser(ctx context.Context, churchID, id uuid.UUID) (*userModel.UserModel, error) {
	var m userModel.UserModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find user"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindUserByName(ctx context.Context, churchID uuid.UUID, name string) (*userModel.UserModel, error) {
	var m userModel.UserModel
	if err := first(s.conn(ctx).Where("church_id = ? AND name = ?", churchID, name), &m, "find user by name"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindUsersByIDs(ctx context.Context, churchID uuid.UUID, ids []uuid.UUID) ([]userModel.UserModel, error) {
	var rows []userModel.UserModel
	if len(ids) == 0 {
		return rows, nil
	}
	err := s.conn(ctx).
		Where("church_id = ? AND id = ANY(?::uuid[])", churchID, pq.Array(uuidStrings(ids))).
		Order("name ASC").
		Find(&rows).Error
	return rows, classify(err, "find users by ids")
}

func (s *GormStore) ListUsers(ctx context.Context, churchID uuid.UUID, f UserFilter, p Page) ([]userModel.UserModel, int64, error) {
	q := s.conn(ctx).Model(&userModel.UserModel{}).Where("church_id = ?", churchID)
	if f.Role != nil {
		q = q.Where("role = ?", *f.Role)
	}
	if f.CellID != nil {
		q = q.Where("cell_id = ?", *f.CellID)
	}
	if prefix := strings.TrimSpace(f.NamePrefix); prefix != "" {
		q = q.Where("name LIKE ?", escapeLike(prefix)+"%")
	}
	if f.LongAbsent != nil {
		q = q.Where("is_long_absenced = ?", *f.LongAbsent)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "count users")
	}
	var rows []userModel.UserModel
	if err := paged(q.Order("name ASC"), p).Find(&rows).Error; err != nil {
		return nil, 0, classify(err, "list users")
	}
	return rows, total, nil
}

func (s *GormStore) CountUsers(ctx context.Context, churchID uuid.UUID) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&userModel.UserModel{}).Where("church_id = ?", churchID).Count(&n).Error
	return n, classify(err, "count users")
}

func (s *GormStore) ListCellMembers(ctx context.Context, cellID uuid.UUID) ([]userModel.UserModel, error) {
	var rows []userModel.UserModel
	err := s.conn(ctx).Where("cell_id = ?", cellID).Order("name ASC").Find(&rows).Error
	return rows, classify(err, "list cell members")
}

/* ===================== GROUPS ===================== */

func (s *GormStore) CreateGroup(ctx context.Context, m *groupModel.GroupModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create group")
}

func (s *GormStore) SaveGroup(ctx context.Context, m *groupModel.GroupModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save group")
}

func (s *GormStore) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&groupModel.GroupModel{}, "id = ?", id), "delete group")
}

func (s *GormStore) FindGroup(ctx context.Context, churchID, id uuid.UUID) (*groupModel.GroupModel, error) {
	var m groupModel.GroupModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find group"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindGroupByName(ctx context.Context, churchID uuid.UUID, name string) (*groupModel.GroupModel, error) {
	var m groupModel.GroupModel
	if err := first(s.conn(ctx).Where("church_id = ? AND name = ?", churchID, name), &m, "find group by name"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListGroups(ctx context.Context, churchID uuid.UUID, p Page) ([]groupModel.GroupModel, int64, error) {
	q := s.conn(ctx).Model(&groupModel.GroupModel{}).Where("church_id = ?", churchID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "count groups")
	}
	var rows []groupModel.GroupModel
	if err := paged(q.Order("name ASC"), p).Find(&rows).Error; err != nil {
		return nil, 0, classify(err, "list groups")
	}
	return rows, total, nil
}

func (s *GormStore) ListGroupsHeadedBy(ctx context.Context, userID uuid.UUID) ([]groupModel.GroupModel, error) {
	var rows []groupModel.GroupModel
	err := s.conn(ctx).
		Where("leader_id = ? OR sub_leader_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, classify(err, "list groups headed by")
}

/* ===================== CELLS ===================== */

func (s *GormStore) CreateCell(ctx context.Context, m *cellModel.CellModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return classify(s.conn(ctx).Create(m).Error, "create cell")
}

func (s *GormStore) SaveCell(ctx context.Context, m *cellModel.CellModel) error {
	return classify(s.conn(ctx).Save(m).Error, "save cell")
}

func (s *GormStore) DeleteCell(ctx context.Context, id uuid.UUID) error {
	return mustAffect(s.conn(ctx).Delete(&cellModel.CellModel{}, "id = ?", id), "delete cell")
}

func (s *GormStore) FindCell(ctx context.Context, churchID, id uuid.UUID) (*cellModel.CellModel, error) {
	var m cellModel.CellModel
	if err := first(s.conn(ctx).Where("church_id = ? AND id = ?", churchID, id), &m, "find cell"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) FindCellByName(ctx context.Context, churchID uuid.UUID, name string) (*cellModel.CellModel, error) {
	var m cellModel.CellModel
	if err := first(s.conn(ctx).Where("church_id = ? AND name = ?", churchID, name), &m, "find cell by name"); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListCells(ctx context.Context, churchID uuid.UUID, f CellFilter, p Page) ([]cellModel.CellModel, int64, error) {
	q := s.conn(ctx).Model(&cellModel.CellModel{}).Where("church_id = ?", churchID)
	if f.GroupID != nil {
		q = q.Where("group_id = ?", *f.GroupID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err, "count cells")
	}
	var rows []cellModel.CellModel
	if err := paged(q.Order("name ASC"), p).Find(&rows).Error; err != nil {
		return nil, 0, classify(err, "list cells")
	}
	return rows, total, nil
}

func (s *GormStore) ListCellsLedBy(ctx context.Context, userID uuid.UUID) ([]cellModel.CellModel, error) {
	var rows []cellModel.CellModel
	err := s.conn(ctx).Where("leader_id = ?", userID).Order("created_at ASC").Find(&rows).Error
	return rows, classify(err, "list cells led by")
}

func (s *GormStore) ListCellsInGroup(ctx context.Context, groupID uuid.UUID) ([]cellModel.CellModel, error) {
	var rows []cellModel.CellModel
	err := s.conn(ctx).Where("group_id = ?", groupID).Order("name ASC").Find(&rows).Error
	return rows, classify(err, "list cells in group")
}

/* ===================== helpers ===================== */

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
