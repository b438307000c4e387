package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/attendance/attendance/dto"
	"churchbook_backend/internals/features/attendance/attendance/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	svc *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{svc: svc}
}

func (ctl *AttendanceController) rangeOf(c *fiber.Ctx) (time.Time, time.Time, error) {
	var q dto.RangeQuery
	if err := c.QueryParser(&q); err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "쿼리 값이 올바르지 않습니다")
	}
	return q.Range(dbtime.NowInChurch(c))
}

// POST /attendance/cells/:cellId
func (ctl *AttendanceController) Check(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	cellID, err := helper.ParseUUIDParam(c, "cellId")
	if err != nil {
		return err
	}
	var req dto.CheckAttendanceRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	rows, err := ctl.svc.Check(c.UserContext(), churchID, userID, cellID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "출석이 저장되었습니다", dto.FromModels(rows))
}

// GET /attendance/cells/:cellId?from=&to=
func (ctl *AttendanceController) ListByCell(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	cellID, err := helper.ParseUUIDParam(c, "cellId")
	if err != nil {
		return err
	}
	from, to, err := ctl.rangeOf(c)
	if err != nil {
		return err
	}
	rows, err := ctl.svc.FindByCell(c.UserContext(), churchID, cellID, from, to)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /attendance/users/:userId?from=&to=
func (ctl *AttendanceController) ListByUser(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.ParseUUIDParam(c, "userId")
	if err != nil {
		return err
	}
	from, to, err := ctl.rangeOf(c)
	if err != nil {
		return err
	}
	rows, err := ctl.svc.FindByUser(c.UserContext(), churchID, userID, from, to)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}
