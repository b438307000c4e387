package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/communities/groups/dto"
	"churchbook_backend/internals/features/communities/groups/service"
	helper "churchbook_backend/internals/helpers"
)

type GroupController struct {
	svc *service.GroupService
}

func NewGroupController(svc *service.GroupService) *GroupController {
	return &GroupController{svc: svc}
}

// GET /groups?offset=&limit=
func (ctl *GroupController) List(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	page, err := helper.ParsePage(c)
	if err != nil {
		return err
	}
	rows, total, err := ctl.svc.FindAll(c.UserContext(), churchID, page)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.Responses(rows), helper.PaginationOf(page, total, len(rows)))
}

// GET /groups/:id
func (ctl *GroupController) Get(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "ok", d.Response())
}

// POST /groups
func (ctl *GroupController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateGroupRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	d, err := ctl.svc.Save(c.UserContext(), churchID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "팸이 생성되었습니다", d.Response())
}

// PUT /groups/:id
func (ctl *GroupController) Update(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateGroupRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	d, err := ctl.svc.Update(c.UserContext(), churchID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "팸이 수정되었습니다", d.Response())
}

// DELETE /groups/:id
func (ctl *GroupController) Delete(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.svc.DeleteByID(c.UserContext(), churchID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "팸이 삭제되었습니다", fiber.Map{"id": id})
}
