package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/features/communities/cells/dto"
	"churchbook_backend/internals/features/communities/cells/model"
	groupModel "churchbook_backend/internals/features/communities/groups/model"
	userModel "churchbook_backend/internals/features/users/users/model"
	userService "churchbook_backend/internals/features/users/users/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgChurchNotFound = "교회를 찾을 수 없습니다"
	msgGroupNotFound  = "팸을 찾을 수 없습니다"
	msgCellNotFound   = "셀을 찾을 수 없습니다"
	msgNewbieLeader   = "새신자는 셀장이 될 수 없습니다"
	msgCellHasMembers = "셀원이 있는 셀은 삭제할 수 없습니다"
	msgDuplicateCell  = "이미 같은 이름의 셀이 존재합니다"
)

type CellService struct {
	store repository.Store
}

func NewCellService(store repository.Store) *CellService {
	return &CellService{store: store}
}

/* =========================================================
   SAVE
========================================================= */

func (s *CellService) Save(ctx context.Context, churchID uuid.UUID, req dto.CreateCellRequest) (*dto.CellDetail, error) {
	var out *dto.CellDetail
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.FindChurch(ctx, churchID); err != nil {
			return helper.FromRepoError(err, msgChurchNotFound)
		}
		group, err := findGroup(ctx, tx, churchID, req.GroupID)
		if err != nil {
			return err
		}
		leader, err := findLeader(ctx, tx, churchID, req.LeaderID)
		if err != nil {
			return err
		}
		name := model.CellName(leader.Name)
		if err := ensureNameFree(ctx, tx, churchID, name, uuid.Nil); err != nil {
			return err
		}

		userModel.ToBeLeader(leader)
		if err := tx.SaveUser(ctx, leader); err != nil {
			return err
		}

		cell := &model.CellModel{
			ChurchID: churchID,
			LeaderID: leader.ID,
			Name:     name,
		}
		if group != nil {
			cell.GroupID = &group.ID
		}
		if err := tx.CreateCell(ctx, cell); err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}

		userModel.JoinCell(leader, cell.ID)
		if err := tx.SaveUser(ctx, leader); err != nil {
			return err
		}

		zap.L().Info("cell created",
			zap.String("cell_id", cell.ID.String()),
			zap.String("leader_id", leader.ID.String()),
		)
		out = &dto.CellDetail{Cell: cell, Group: group, Leader: leader}
		return nil
	})
	return out, err
}

/* =========================================================
   UPDATE
========================================================= */

func (s *CellService) Update(ctx context.Context, churchID, id uuid.UUID, req dto.UpdateCellRequest) (*dto.CellDetail, error) {
	var out *dto.CellDetail
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		cell, err := tx.FindCell(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}

		sameGroup := sameID(cell.GroupID, req.GroupID)
		sameLeader := cell.LeaderID == req.LeaderID
		if sameGroup && sameLeader {
			out, err = detail(ctx, tx, cell, true)
			return err
		}

		group, err := findGroup(ctx, tx, churchID, req.GroupID)
		if err != nil {
			return err
		}
		if group != nil {
			cell.GroupID = &group.ID
		} else {
			cell.GroupID = nil
		}

		if !sameLeader {
			if err := s.swapLeader(ctx, tx, cell, req.LeaderID); err != nil {
				return err
			}
		}

		if err := tx.SaveCell(ctx, cell); err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}
		out, err = detail(ctx, tx, cell, true)
		return err
	})
	return out, err
}

func (s *CellService) swapLeader(ctx context.Context, tx repository.Store, cell *model.CellModel, leaderID uuid.UUID) error {
	next, err := findLeader(ctx, tx, cell.ChurchID, leaderID)
	if err != nil {
		return err
	}
	name := model.CellName(next.Name)
	if err := ensureNameFree(ctx, tx, cell.ChurchID, name, cell.ID); err != nil {
		return err
	}

	prev, err := tx.FindUser(ctx, cell.ChurchID, cell.LeaderID)
	switch {
	case err == nil:
		if err := userService.ReleaseCellLeader(ctx, tx, prev, cell.ID); err != nil {
			return err
		}
	case !repository.IsNotFound(err):
		return err
	}

	cell.LeaderID = next.ID
	cell.Name = name
	userModel.ToBeLeader(next)
	userModel.JoinCell(next, cell.ID)
	return tx.SaveUser(ctx, next)
}

/* =========================================================
   DELETE
========================================================= */

func (s *CellService) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		cell, err := tx.FindCell(ctx, churchID, id)
		if err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}
		members, err := tx.ListCellMembers(ctx, cell.ID)
		if err != nil {
			return err
		}
		for i := range members {
			if members[i].ID != cell.LeaderID {
				return fiber.NewError(fiber.StatusBadRequest, msgCellHasMembers)
			}
		}

		leader, err := tx.FindUser(ctx, churchID, cell.LeaderID)
		switch {
		case err == nil:
			if err := userService.ReleaseCellLeader(ctx, tx, leader, cell.ID); err != nil {
				return err
			}
		case !repository.IsNotFound(err):
			return err
		}
		if err := tx.DeleteCell(ctx, cell.ID); err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}

		zap.L().Info("cell deleted", zap.String("cell_id", cell.ID.String()))
		return nil
	})
}

/* =========================================================
   READ
========================================================= */

func (s *CellService) FindAll(ctx context.Context, churchID uuid.UUID, groupID *uuid.UUID, p repository.Page) ([]dto.CellDetail, int64, error) {
	rows, total, err := s.store.ListCells(ctx, churchID, repository.CellFilter{GroupID: groupID}, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.CellDetail, 0, len(rows))
	for i := range rows {
		d, err := detail(ctx, s.store, &rows[i], true)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, nil
}

func (s *CellService) FindByID(ctx context.Context, churchID, id uuid.UUID) (*dto.CellDetail, error) {
	cell, err := s.store.FindCell(ctx, churchID, id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgCellNotFound)
	}
	return detail(ctx, s.store, cell, true)
}

/* =========================================================
   helpers
========================================================= */

func detail(ctx context.Context, st repository.Store, cell *model.CellModel, withMembers bool) (*dto.CellDetail, error) {
	d := &dto.CellDetail{Cell: cell}
	if cell.GroupID != nil {
		g, err := st.FindGroup(ctx, cell.ChurchID, *cell.GroupID)
		if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
		d.Group = g
	}
	if l, err := st.FindUser(ctx, cell.ChurchID, cell.LeaderID); err == nil {
		d.Leader = l
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if withMembers {
		all, err := st.ListCellMembers(ctx, cell.ID)
		if err != nil {
			return nil, err
		}
		for i := range all {
			if all[i].ID != cell.LeaderID {
				d.Members = append(d.Members, all[i])
			}
		}
	}
	return d, nil
}

func findGroup(ctx context.Context, tx repository.Store, churchID uuid.UUID, id *uuid.UUID) (*groupModel.GroupModel, error) {
	if id == nil {
		return nil, nil
	}
	g, err := tx.FindGroup(ctx, churchID, *id)
	if err != nil {
		return nil, helper.FromRepoError(err, msgGroupNotFound)
	}
	return g, nil
}

func findLeader(ctx context.Context, tx repository.Store, churchID, id uuid.UUID) (*userModel.UserModel, error) {
	u, err := userService.FindUser(ctx, tx, churchID, id)
	if err != nil {
		return nil, err
	}
	if !u.Role.CanLeadCell() {
		return nil, fiber.NewError(fiber.StatusBadRequest, msgNewbieLeader)
	}
	return u, nil
}

func ensureNameFree(ctx context.Context, tx repository.Store, churchID uuid.UUID, name string, self uuid.UUID) error {
	c, err := tx.FindCellByName(ctx, churchID, name)
	switch {
	case err == nil && c.ID != self:
		return fiber.NewError(fiber.StatusConflict, msgDuplicateCell)
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
