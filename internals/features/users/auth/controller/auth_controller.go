package controller

import (
	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/features/users/auth/dto"
	"churchbook_backend/internals/features/users/auth/service"
	helper "churchbook_backend/internals/helpers"
)

type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// POST /auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	pair, err := ac.svc.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "로그인 되었습니다", pair)
}

// POST /auth/refresh
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "요청 본문이 올바르지 않습니다")
	}
	// the access token may also come from the Authorization header
	if req.AccessToken == "" {
		req.AccessToken = helper.GetRawAccessToken(c)
	}
	if err := helper.Validator().Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "인증에 실패했습니다")
	}
	pair, err := ac.svc.Refresh(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", pair)
}

// POST /auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, ok := helper.BearerToken(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "인증에 실패했습니다")
	}
	if err := ac.svc.RemoveToken(c.UserContext(), raw); err != nil {
		return err
	}
	return helper.JsonOK(c, "로그아웃 되었습니다", nil)
}
