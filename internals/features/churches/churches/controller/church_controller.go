package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/churches/churches/dto"
	"churchbook_backend/internals/features/churches/churches/service"
	helper "churchbook_backend/internals/helpers"
)

type ChurchController struct {
	svc *service.ChurchService
}

func NewChurchController(svc *service.ChurchService) *ChurchController {
	return &ChurchController{svc: svc}
}

// POST /churches
func (ctl *ChurchController) Create(c *fiber.Ctx) error {
	var req dto.CreateChurchRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "교회가 등록되었습니다", dto.FromModel(m))
}

// GET /churches
func (ctl *ChurchController) List(c *fiber.Ctx) error {
	page, err := helper.ParsePage(c)
	if err != nil {
		return err
	}
	rows, total, err := ctl.svc.FindAll(c.UserContext(), page)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.PaginationOf(page, total, len(rows)))
}

// GET /churches/:id
func (ctl *ChurchController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	m, err := ctl.svc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// GET /churches/me (token scope)
func (ctl *ChurchController) Mine(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	m, err := ctl.svc.FindByID(c.UserContext(), churchID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// PUT /churches/:id
func (ctl *ChurchController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateChurchRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "교회 정보가 수정되었습니다", dto.FromModel(m))
}

// DELETE /churches/:id
func (ctl *ChurchController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "교회가 삭제되었습니다", fiber.Map{"id": id})
}
