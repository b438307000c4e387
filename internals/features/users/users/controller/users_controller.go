package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/constants"
	"churchbook_backend/internals/features/users/users/dto"
	"churchbook_backend/internals/features/users/users/service"
	helper "churchbook_backend/internals/helpers"
	"churchbook_backend/internals/repository"
)

type UserController struct {
	svc *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{svc: svc}
}

// =====================================================
// LIST: GET /users?role=&cell_id=&name=&long_absent=&offset=&limit=
// =====================================================

func (ctl *UserController) List(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	page, err := helper.ParsePage(c)
	if err != nil {
		return err
	}
	var q dto.ListUsersQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "쿼리 값이 올바르지 않습니다")
	}
	f, err := filterOf(c, q)
	if err != nil {
		return err
	}

	rows, total, err := ctl.svc.FindAll(c.UserContext(), churchID, f, page)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.PaginationOf(page, total, len(rows)))
}

func filterOf(c *fiber.Ctx, q dto.ListUsersQuery) (repository.UserFilter, error) {
	f := repository.UserFilter{NamePrefix: helper.NormalizeName(q.Name)}
	if s := strings.TrimSpace(q.Role); s != "" {
		r, ok := constants.RoleByName(s)
		if !ok {
			return f, fiber.NewError(fiber.StatusBadRequest, "role 값이 올바르지 않습니다")
		}
		f.Role = &r
	}
	cellID, err := helper.ParseUUIDQuery(c, "cell_id")
	if err != nil {
		return f, err
	}
	f.CellID = cellID
	if s := strings.TrimSpace(q.LongAbsent); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "long_absent 값이 올바르지 않습니다")
		}
		f.LongAbsent = &b
	}
	return f, nil
}

// =====================================================
// DETAIL: GET /users/:id , GET /users/me
// =====================================================

func (ctl *UserController) Get(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	u, err := ctl.svc.FindByID(c.UserContext(), churchID, id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(u))
}

func (ctl *UserController) Me(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	u, err := ctl.svc.FindByID(c.UserContext(), churchID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(u))
}

// =====================================================
// CREATE / UPDATE / DELETE
// =====================================================

func (ctl *UserController) Create(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	u, err := ctl.svc.Create(c.UserContext(), churchID, req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "사용자가 등록되었습니다", dto.FromModel(u))
}

func (ctl *UserController) Update(c *fiber.Ctx) error {
	churchID, err := helper.GetChurchIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}
	u, err := ctl.svc.Update(c.UserContext(), churchID, id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "사용자 정보가 수정되었습니다", dto.FromModel(u))
}

func (ctl *UserController) Delete(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "사용자가 삭제되었습니다", fiber.Map{"id": id})
}
