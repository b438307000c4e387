package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/features/communities/groups/dto"
	"churchbook_backend/internals/features/communities/groups/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	userService "churchbook_backend/internals/features/users/users/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgChurchNotFound  = "교회를 찾을 수 없습니다"
	msgGroupNotFound   = "팸을 찾을 수 없습니다"
	msgDuplicateGroup  = "이미 같은 이름의 팸이 존재합니다"
	msgInvalidHead     = "새신자 또는 셀원은 팸장, 부팸장이 될 수 없습니다"
	msgSameHead        = "팸장과 부팸장은 같은 사람일 수 없습니다"
	msgGroupHasCells   = "해당 팸에 소속된 셀이 존재합니다"
	msgGroupNameNeeded = "팸 이름은 필수입니다"
)

type GroupService struct {
	store repository.Store
}

func NewGroupService(store repository.Store) *GroupService {
	return &GroupService{store: store}
}

// heads is the resolved leader/sub-leader pair of a group.
type heads struct {
	leader *userModel.UserModel
	sub    *userModel.UserModel
}

func (h heads) ids() []uuid.UUID {
	out := []uuid.UUID{h.leader.ID}
	if h.sub != nil {
		out = append(out, h.sub.ID)
	}
	return out
}

/* =========================================================
   SAVE
========================================================= */

func (s *GroupService) Save(ctx context.Context, churchID uuid.UUID, req dto.CreateGroupRequest) (*dto.GroupDetail, error) {
	name := helper.NormalizeName(req.Name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgGroupNameNeeded)
	}

	var out *dto.GroupDetail
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.FindChurch(ctx, churchID); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		if err := ensureNameFree(ctx, tx, churchID, name, uuid.Nil); err != nil {
			return err
		}
		h, err := resolveHeads(ctx, tx, churchID, req.LeaderID, req.SubLeaderID)
		if err != nil {
			return err
		}

		g := &model.GroupModel{ChurchID: churchID, Name: name, LeaderID: h.leader.ID}
		if h.sub != nil {
			g.SubLeaderID = &h.sub.ID
		}
		if err := tx.CreateGroup(ctx, g); err != nil {
			return helper.FromRepoError(err, msgGroupNotFound)
		}
		if err := assignHeads(ctx, tx, churchID, g.ID, h.ids()); err != nil {
			return err
		}

		zap.L().Info("group created", zap.String("group_id", g.ID.String()), zap.String("name", g.Name))
		out, err = detail(ctx, tx, g)
		return err
	})
	return out, err
}

/* =========================================================
   UPDATE
========================================================= */

func (s *GroupService) Update(ctx context.Context, churchID, id uuid.UUID, req dto.UpdateGroupRequest) (*dto.GroupDetail, error) {
	name := helper.NormalizeName(req.Name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgGroupNameNeeded)
	}

	var out *dto.GroupDetail
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		g, err := tx.FindGroup(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgGroupNotFound)
		}

		if g.Name == name && g.LeaderID == req.LeaderID && sameID(g.SubLeaderID, req.SubLeaderID) {
			out, err = detail(ctx, tx, g)
			return err
		}

		if g.Name != name {
			if err := ensureNameFree(ctx, tx, churchID, name, g.ID); err != nil {
				return err
			}
		}
		h, err := resolveHeads(ctx, tx, churchID, req.LeaderID, req.SubLeaderID)
		if err != nil {
			return err
		}

		previous := headIDs(g)
		g.Name = name
		g.LeaderID = h.leader.ID
		g.SubLeaderID = nil
		if h.sub != nil {
			g.SubLeaderID = &h.sub.ID
		}
		if err := tx.SaveGroup(ctx, g); err != nil {
			return helper.FromRepoError(err, msgGroupNotFound)
		}

		// heads keeping a seat are only re-assigned, never reverted
		for _, uid := range previous {
			if g.IsHeadedBy(uid) {
				continue
			}
			if err := revertHead(ctx, tx, churchID, g.ID, uid); err != nil {
				return err
			}
		}
		if err := assignHeads(ctx, tx, churchID, g.ID, h.ids()); err != nil {
			return err
		}

		zap.L().Info("group updated", zap.String("group_id", g.ID.String()))
		out, err = detail(ctx, tx, g)
		return err
	})
	return out, err
}

/* =========================================================
   DELETE
========================================================= */

func (s *GroupService) DeleteByID(ctx context.Context, churchID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		g, err := tx.FindGroup(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgGroupNotFound)
		}
		for _, uid := range headIDs(g) {
			if err := revertHead(ctx, tx, churchID, g.ID, uid); err != nil {
				return err
			}
		}

		// cells of the heads were detached above; anything left belongs to someone else
		rest, err := tx.ListCellsInGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		if len(rest) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, msgGroupHasCells)
		}

		if err := tx.DeleteGroup(ctx, g.ID); err != nil {
			return helper.FromRepoError(err, msgGroupNotFound)
		}
		zap.L().Info("group deleted", zap.String("group_id", g.ID.String()))
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

func (s *GroupService) FindAll(ctx context.Context, churchID uuid.UUID, p repository.Page) ([]dto.GroupDetail, int64, error) {
	rows, total, err := s.store.ListGroups(ctx, churchID, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.GroupDetail, 0, len(rows))
	for i := range rows {
		d, err := detail(ctx, s.store, &rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, nil
}

func (s *GroupService) FindByID(ctx context.Context, churchID, id uuid.UUID) (*dto.GroupDetail, error) {
	g, err := s.store.FindGroup(ctx, churchID, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgGroupNotFound)
	}
	return detail(ctx, s.store, g)
}

/* =========================================================
   helpers
========================================================= */

func resolveHeads(ctx context.Context, tx repository.Store, churchID, leaderID uuid.UUID, subID *uuid.UUID) (heads, error) {
	var h heads
	if subID != nil && *subID == leaderID {
		return h, fiber.NewError(fiber.StatusBadRequest, msgSameHead)
	}
	leader, err := findHead(ctx, tx, churchID, leaderID)
	if err != nil {
		return h, err
	}
	h.leader = leader
	if subID != nil {
		sub, err := findHead(ctx, tx, churchID, *subID)
		if err != nil {
			return h, err
		}
		h.sub = sub
	}
	return h, nil
}

func findHead(ctx context.Context, tx repository.Store, churchID, id uuid.UUID) (*userModel.UserModel, error) {
	u, err := userService.FindUser(ctx, tx, churchID, id)
	if err != nil {
		return nil, err
	}
	if !u.Role.CanLeadFamily() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgInvalidHead)
	}
	return u, nil
}

// assignHeads re-reads each head so earlier steps in the transaction are not overwritten.
func assignHeads(ctx context.Context, tx repository.Store, churchID, groupID uuid.UUID, ids []uuid.UUID) error {
	for _, uid := range ids {
		u, err := userService.FindUser(ctx, tx, churchID, uid)
		if err != nil {
			return err
		}
		if err := userService.AssignFamilyLeader(ctx, tx, u, groupID); err != nil {
			return err
		}
	}
	return nil
}

func revertHead(ctx context.Context, tx repository.Store, churchID, groupID, userID uuid.UUID) error {
	u, err := tx.FindUser(ctx, churchID, userID)
	if repository.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return userService.RevertFamilyLeader(ctx, tx, u, groupID)
}

func headIDs(g *model.GroupModel) []uuid.UUID {
	out := []uuid.UUID{g.LeaderID}
	if g.SubLeaderID != nil {
		out = append(out, *g.SubLeaderID)
	}
	return out
}

func detail(ctx context.Context, st repository.Store, g *model.GroupModel) (*dto.GroupDetail, error) {
	d := &dto.GroupDetail{Group: g}
	users, err := st.FindUsersByIDs(ctx, g.ChurchID, headIDs(g))
	if err != nil {
		return nil, err
	}
	for i := range users {
		switch {
		case users[i].ID == g.LeaderID:
			d.Leader = &users[i]
		case g.SubLeaderID != nil && users[i].ID == *g.SubLeaderID:
			d.SubLeader = &users[i]
		}
	}
	cells, err := st.ListCellsInGroup(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	d.Cells = cells
	return d, nil
}

func ensureNameFree(ctx context.Context, tx repository.Store, churchID uuid.UUID, name string, self uuid.UUID) error {
	g, err := tx.FindGroupByName(ctx, churchID, name)
	switch {
	case err == nil && g.ID != self:
		return fiber.NewError(fiber.StatusConflict, msgDuplicateGroup)
	case err != nil && !repository.IsNotFound(err):
		return err
	}
	return nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
