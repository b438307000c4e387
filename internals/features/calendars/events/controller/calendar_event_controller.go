package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/calendars/events/dto"
	"churchbook_backend/internals/features/calendars/events/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/helpers/dbtime"
)

type EventController struct {
	svc *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{svc: svc}
}

// GET /calendars?from=&to=  |  /calendars?year=&month=
func (ctl *EventController) List(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	var q dto.EventQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "쿼리 값이 올바르지 않습니다")
	}
	from, to, err := q.Range(dbtime.NowInChurch(c))
	if err != nil {
		return err
	}
	rows, err := ctl.svc.FindAll(c.UserContext(), churchID, from, to)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"from":   from,
		"to":     to,
		"events": dto.FromModels(rows),
	})
}

// GET /calendars/:id
func (ctl *EventController) Get(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.svc.FindByID(c.UserContext(), churchID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /calendars
func (ctl *EventController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateEventRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Create(c.UserContext(), churchID, userID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "일정이 등록되었습니다", dto.FromModel(m))
}

// PUT /calendars/:id
func (ctl *EventController) Update(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEventRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Update(c.UserContext(), churchID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "일정이 수정되었습니다", dto.FromModel(m))
}

// DELETE /calendars/:id
func (ctl *EventController) Delete(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.svc.Delete(c.UserContext(), churchID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "일정이 삭제되었습니다", fiber.Map{"id": id})
}
