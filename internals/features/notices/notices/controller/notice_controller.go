package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/notices/notices/dto"
	"churchbook_backend/internals/features/notices/notices/service"
	helper "churchbook_backend/internals/helpers"
)

type NoticeController struct {
	svc *service.NoticeService
}

func NewNoticeController(svc *service.NoticeService) *NoticeController {
	return &NoticeController{svc: svc}
}

// GET /notices?offset=&limit=
func (ctl *NoticeController) List(c *fiber.Ctx) error {
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
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.PaginationOf(page, total, len(rows)))
}

// GET /notices/:id
func (ctl *NoticeController) Get(c *fiber.Ctx) error {
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

// POST /notices
func (ctl *NoticeController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateNoticeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Create(c.UserContext(), churchID, userID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "공지사항이 등록되었습니다", dto.FromModel(m))
}

// PUT /notices/:id
func (ctl *NoticeController) Update(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateNoticeRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Update(c.UserContext(), churchID, userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "공지사항이 수정되었습니다", dto.FromModel(m))
}

// DELETE /notices/:id
func (ctl *NoticeController) Delete(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.svc.Delete(c.UserContext(), churchID, userID, id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "공지사항이 삭제되었습니다", fiber.Map{"id": id})
}
