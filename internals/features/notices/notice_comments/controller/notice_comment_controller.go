package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/notices/notice_comments/dto"
	"churchbook_backend/internals/features/notices/notice_comments/service"
	helper "churchbook_backend/internals/helpers"
)

type CommentController struct {
	svc *service.CommentService
}

func NewCommentController(svc *service.CommentService) *CommentController {
	return &CommentController{svc: svc}
}

// GET /notices/:noticeId/comments
func (ctl *CommentController) Tree(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	noticeID, err := helper.ParseUUIDParam(c, "noticeId")
	if err != nil {
		return err
	}
	nodes, err := ctl.svc.FindTree(c.UserContext(), churchID, noticeID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.Tree(nodes))
}

// POST /notices/:noticeId/comments
func (ctl *CommentController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	noticeID, err := helper.ParseUUIDParam(c, "noticeId")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Create(c.UserContext(), churchID, userID, noticeID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "댓글이 등록되었습니다", dto.FromModel(m))
}

// PUT /notice-comments/:id
func (ctl *CommentController) Update(c *fiber.Ctx) error {
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
	var req dto.UpdateCommentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.svc.Update(c.UserContext(), churchID, userID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "댓글이 수정되었습니다", dto.FromModel(m))
}

// DELETE /notice-comments/:id
func (ctl *CommentController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "댓글이 삭제되었습니다", fiber.Map{"id": id})
}
