package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/features/attendance/attendance/dto"
	"churchbook_backend/internals/features/attendance/attendance/model"
	userService "churchbook_backend/internals/features/users/users/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

const (
	msgCellNotFound   = "셀을 찾을 수 없습니다"
	msgNotCellMember  = "해당 셀에 소속되지 않은 성도가 포함되어 있습니다"
	msgDuplicateEntry = "같은 성도가 중복으로 포함되어 있습니다"
	msgCheckForbidden = "셀장 또는 교역자만 출석을 체크할 수 있습니다"
)

type AttendanceService struct {
	store repository.Store
}

func NewAttendanceService(store repository.Store) *AttendanceService {
	return &AttendanceService{store: store}
}

// Check records one day of attendance for a cell. Existing rows for the same user
// and day are overwritten.
func (s *AttendanceService) Check(ctx context.Context, churchID, callerID, cellID uuid.UUID, req dto.CheckAttendanceRequest) ([]model.AttendanceModel, error) {
	day, err := req.Day()
	if err != nil {
		return nil, err
	}

	var out []model.AttendanceModel
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		cell, err := tx.FindCell(ctx, churchID, cellID)
		if err != nil {
			return helper.FromRepoError(err, msgCellNotFound)
		}

		caller, err := userService.FindUser(ctx, tx, churchID, callerID)
		if err != nil {
			return err
		}
		if cell.LeaderID != caller.ID && !caller.Role.IsStaff() {
			return fiber.NewError(fiber.StatusForbidden, msgCheckForbidden)
		}

		members, err := tx.ListCellMembers(ctx, cell.ID)
		if err != nil {
			return err
		}
		allowed := make(map[uuid.UUID]bool, len(members)+1)
		allowed[cell.LeaderID] = true
		for _, m := range members {
			allowed[m.ID] = true
		}

		seen := make(map[uuid.UUID]bool, len(req.Entries))
		for _, e := range req.Entries {
			if !allowed[e.UserID] {
				return fiber.NewError(fiber.StatusBadRequest, msgNotCellMember)
			}
			if seen[e.UserID] {
				return fiber.NewError(fiber.StatusBadRequest, msgDuplicateEntry)
			}
			seen[e.UserID] = true
		}

		rows := req.ToModels(churchID, cell.ID, day)
		if err := tx.UpsertAttendances(ctx, rows); err != nil {
			zap.L().Error("upsert attendances",
				zap.String("cell_id", cell.ID.String()),
				zap.String("date", day.Format(dto.DateLayout)),
				zap.Error(err))
			return helper.FromRepoError(err, msgCellNotFound)
		}
		out = rows
		return nil
	})
	return out, err
}

func (s *AttendanceService) FindByCell(ctx context.Context, churchID, cellID uuid.UUID, from, to time.Time) ([]model.AttendanceModel, error) {
	cell, err := s.store.FindCell(ctx, churchID, cellID)
	if err != nil {
		return nil, helper.FromRepoError(err, msgCellNotFound)
	}
	return s.store.ListAttendanceByCell(ctx, cell.ID, from, to)
}

func (s *AttendanceService) FindByUser(ctx context.Context, churchID, userID uuid.UUID, from, to time.Time) ([]model.AttendanceModel, error) {
	u, err := userService.FindUser(ctx, s.store, churchID, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListAttendanceByUser(ctx, u.ID, from, to)
}
