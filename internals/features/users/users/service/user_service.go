package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"churchbook_backend/internals/constants"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	"churchbook_backend/internals/features/users/users/dto"
	"churchbook_backend/internals/features/users/users/model"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgUserNotFound      = "사용자를 찾을 수 없습니다"
	msgChurchNotFound    = "교회를 찾을 수 없습니다"
	msgCellNotFound      = "셀을 찾을 수 없습니다"
	msgDuplicateUserName = "이미 등록된 이름입니다"
	msgLeaderCellLocked  = "셀장의 소속 셀은 셀 관리에서만 변경할 수 있습니다"
	msgLeaderDelete      = "셀장 또는 팸장은 삭제할 수 없습니다"
	msgRoleByAssignment  = "팸장, 부팸장, 셀장 권한은 셀/팸 배정으로만 부여됩니다"
	msgRoleLocked        = "셀 또는 팸을 이끄는 사용자의 역할은 변경할 수 없습니다"
	msgPasswordRole      = "셀장 이상만 비밀번호를 가질 수 있습니다"
	msgInvalidRole       = "올바르지 않은 역할입니다"
	msgDuplicateCellName = "이미 같은 이름의 셀이 존재합니다"
)

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// FindUser loads a user of churchID or returns a 404.
func FindUser(ctx context.Context, tx repository.Store, churchID, id uuid.UUID) (*model.UserModel, error) {
	u, err := tx.FindUser(ctx, churchID, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgUserNotFound)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, churchID uuid.UUID, req dto.CreateUserRequest) (*model.UserModel, error) {
	name := helper.NormalizeName(req.Name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "이름은 필수입니다")
	}
	role := req.Role
	if role == 0 {
		role = constants.RoleNewbie
	}
	if !role.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgInvalidRole)
	}
	if role == constants.RoleLeader || role.IsFamilyRole() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgRoleByAssignment)
	}
	rank := req.Rank
	if rank == 0 {
		rank = constants.RankSaint
	}

	u := &model.UserModel{
		ChurchID:       churchID,
		Name:           name,
		Image:          req.Image,
		Age:            req.Age,
		Role:           role,
		Rank:           rank,
		Gender:         req.Gender,
		Birth:          req.Birth,
		Address:        req.Address,
		Contact:        req.Contact,
		IsLongAbsenced: req.IsLongAbsenced,
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.FindChurch(ctx, churchID); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		if _, err := tx.FindUserByName(ctx, churchID, name); err == nil {
			return fiber.NewError(fiber.StatusConflict, msgDuplicateUserName)
		} else if !repository.IsNotFound(err) {
			return err
		}
		if err := tx.CreateUser(ctx, u); err != nil {
			return helper.FromRepoError(err, msgUserNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("user created", zap.String("user_id", u.ID.String()), zap.String("church_id", churchID.String()))
	return u, nil
}

func (s *UserService) FindAll(ctx context.Context, churchID uuid.UUID, f repository.UserFilter, p repository.Page) ([]model.UserModel, int64, error) {
	return s.store.ListUsers(ctx, churchID, f, p)
}

func (s *UserService) FindByID(ctx context.Context, churchID, id uuid.UUID) (*model.UserModel, error) {
	return FindUser(ctx, s.store, churchID, id)
}

func (s *UserService) Update(ctx context.Context, churchID, id uuid.UUID, req dto.UpdateUserRequest) (*model.UserModel, error) {
	var out *model.UserModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		u, err := FindUser(ctx, tx, churchID, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := helper.NormalizeName(*req.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "이름은 필수입니다")
			}
			if name != u.Name {
				if _, err := tx.FindUserByName(ctx, churchID, name); err == nil {
					return fiber.NewError(fiber.StatusConflict, msgDuplicateUserName)
				} else if !repository.IsNotFound(err) {
					return err
				}
				u.Name = name
				if err := renameLedCells(ctx, tx, u); err != nil {
					return err
				}
			}
		}
		if req.Image != nil {
			u.Image = req.Image
		}
		if req.Age != nil {
			u.Age = req.Age
		}
		if req.Rank != nil {
			u.Rank = *req.Rank
		}
		if req.Gender != nil {
			u.Gender = *req.Gender
		}
		if req.Birth != nil {
			u.Birth = req.Birth
		}
		if req.Address != nil {
			u.Address = *req.Address
		}
		if req.Contact != nil {
			u.Contact = req.Contact
		}
		if req.IsLongAbsenced != nil {
			u.IsLongAbsenced = *req.IsLongAbsenced
		}

		if req.CellID != nil || req.ClearCell {
			if err := s.moveCell(ctx, tx, u, req.CellID, req.ClearCell); err != nil {
				return err
			}
		}

		if err := tx.SaveUser(ctx, u); err != nil {
			return helper.FromRepoError(err, msgUserNotFound)
		}
		out = u
		return nil
	})
	return out, err
}

// renameLedCells keeps "<leader>셀" in step with the leader's name.
func renameLedCells(ctx context.Context, tx repository.Store, u *model.UserModel) error {
	led, err := tx.ListCellsLedBy(ctx, u.ID)
	if err != nil {
		return err
	}
	name := cellModel.CellName(u.Name)
	for i := range led {
		c := &led[i]
		if c.Name == name {
			continue
		}
		other, err := tx.FindCellByName(ctx, u.ChurchID, name)
		switch {
		case err == nil && other.ID != c.ID:
			return fiber.NewError(fiber.StatusConflict, msgDuplicateCellName)
		case err != nil && !repository.IsNotFound(err):
			return err
		}
		c.Name = name
		if err := tx.SaveCell(ctx, c); err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}
	}
	return nil
}

func (s *UserService) moveCell(ctx context.Context, tx repository.Store, u *model.UserModel, cellID *uuid.UUID, clear bool) error {
	led, err := tx.ListCellsLedBy(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(led) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, msgLeaderCellLocked)
	}
	if clear {
		model.LeaveCell(u)
		return nil
	}
	cell, err := tx.FindCell(ctx, u.ChurchID, *cellID)
	if err != nil {
		return helper.FromRepoError(err, msgCellNotFound)
	}
	model.JoinCell(u, cell.ID)
	return nil
}

// Delete refuses users who still lead a cell or head a group. Authored notices and
// comments keep their snapshots.
func (s *UserService) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		u, err := FindUser(ctx, tx, churchID, id)
		if err != nil {
			return err
		}
		if err := ensureNotLeading(ctx, tx, u.ID, msgLeaderDelete); err != nil {
			return err
		}
		return helper.FromRepoError(tx.DeleteUser(ctx, u.ID), msgUserNotFound)
	})
}

// ChangeRole sets roles that carry no cell or group linkage: staff roles, MEMBER and
// NEWBIE. Leader roles follow from cell/group assignment only.
func (s *UserService) ChangeRole(ctx context.Context, churchID, id uuid.UUID, role constants.Role) (*model.UserModel, error) {
	if !role.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgInvalidRole)
	}
	if role == constants.RoleLeader || role.IsFamilyRole() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgRoleByAssignment)
	}

	var out *model.UserModel
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		u, err := FindUser(ctx, tx, churchID, id)
		if err != nil {
			return err
		}
		if u.Role == role {
			out = u
			return nil
		}
		if !role.IsStaff() {
			if err := ensureNotLeading(ctx, tx, u.ID, msgRoleLocked); err != nil {
				return err
			}
			if !role.IsAtLeast(constants.RoleLeader) {
				u.Password = nil
			}
		}
		model.ChangeRole(u, role)
		if err := tx.SaveUser(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

// SetPassword stores a bcrypt hash; only leaders and above sign in.
func (s *UserService) SetPassword(ctx context.Context, churchID, id uuid.UUID, password string) error {
	password = strings.TrimSpace(password)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "비밀번호를 처리할 수 없습니다")
	}
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		u, err := FindUser(ctx, tx, churchID, id)
		if err != nil {
			return err
		}
		if !u.Role.IsAtLeast(constants.RoleLeader) {
			return fiber.NewError(fiber.StatusBadRequest, msgPasswordRole)
		}
		h := string(hash)
		u.Password = &h
		return tx.SaveUser(ctx, u)
	})
}

func ensureNotLeading(ctx context.Context, tx repository.Store, userID uuid.UUID, msg string) error {
	cells, err := tx.ListCellsLedBy(ctx, userID)
	if err != nil {
		return err
	}
	groups, err := tx.ListGroupsHeadedBy(ctx, userID)
	if err != nil {
		return err
	}
	if len(cells) > 0 || len(groups) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return nil
}
