package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/communities/cells/dto"
	"churchbook_backend/internals/features/communities/cells/service"
	helper "churchbook_backend/internals/helpers"
)

type CellController struct {
	svc *service.CellService
}

func NewCellController(svc *service.CellService) *CellController {
	return &CellController{svc: svc}
}

// GET /cells?group_id=&offset=&limit=
func (ctl *CellController) List(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	page, err := helper.ParsePage(c)
	if err != nil {
		return err
	}
	groupID, err := helper.ParseUUIDQuery(c, "group_id")
	if err != nil {
		return err
	}
	rows, total, err := ctl.svc.FindAll(c.UserContext(), churchID, groupID, page)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.Responses(rows), helper.PaginationOf(page, total, len(rows)))
}

// GET /cells/:id
func (ctl *CellController) Get(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	d, err := ctl.svc.FindByID(c.UserContext(), churchID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", d.Response(true))
}

// POST /cells
func (ctl *CellController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateCellRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	d, err := ctl.svc.Save(c.UserContext(), churchID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "셀이 생성되었습니다", d.Response(true))
}

// PUT /cells/:id
func (ctl *CellController) Update(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCellRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	d, err := ctl.svc.Update(c.UserContext(), churchID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "셀이 수정되었습니다", d.Response(true))
}

// DELETE /cells/:id
func (ctl *CellController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "셀이 삭제되었습니다", fiber.Map{"id": id})
}
