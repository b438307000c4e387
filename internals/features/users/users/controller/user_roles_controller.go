package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/users/users/dto"
	helper "churchbook_backend/internals/helpers"
)

// =====================================================
// ROLE: PUT /users/:id/role
// =====================================================

func (ctl *UserController) ChangeRole(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "올바르지 않은 역할입니다")
	}
	u, err := ctl.svc.ChangeRole(c.UserContext(), churchID, id, req.Role)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "역할이 변경되었습니다", dto.FromModel(u))
}

// =====================================================
// PASSWORD: PUT /users/:id/password
// =====================================================

func (ctl *UserController) SetPassword(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetPasswordRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	if err := ctl.svc.SetPassword(c.UserContext(), churchID, id, req.Password); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "비밀번호가 설정되었습니다", fiber.Map{"id": id})
}
