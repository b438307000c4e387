package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"churchbook_backend/internals/repository"
)

// ParsePage reads ?offset= and ?limit=. Missing values take the defaults; non-numeric
// or negative values are a 400.
func ParsePage(c *fiber.Ctx) (repository.Page, error) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := queryInt(c, "limit", repository.DefaultLimit)
	if err != nil {
		return repository.Page{}, err
	}
	if limit == 0 {
		return repository.Page{}, fiber.NewError(fiber.StatusBadRequest, "limit 값은 1 이상이어야 합니다")
	}
	return repository.Page{Offset: offset, Limit: limit}.Normalize(), nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" 값은 0 이상의 정수여야 합니다")
	}
	return n, nil
}

// PaginationOf builds the response block for a fetched window.
func PaginationOf(p repository.Page, total int64, count int) Pagination {
	return BuildPagination(total, p.Offset, p.Limit, count)
}
