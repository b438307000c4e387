package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Pagination (offset/limit)
=================================*/

type Pagination struct {
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Count   int   `json:"count"` // items on this page
	HasNext bool  `json:"has_next"`
}

func BuildPagination(total int64, offset, limit, count int) Pagination {
	return Pagination{
		Offset:  offset,
		Limit:   limit,
		Total:   total,
		Count:   count,
		HasNext: int64(offset+count) < total,
	}
}

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic error (not validation)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" && status >= 500 {
		message = fiber.ErrInternalServerError.Message
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	})
}

// JsonValidationError: 400 with a field to tag map
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonList: list with pagination
func JsonList(c *fiber.Ctx, message string, data any, pagination Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": pagination,
	})
}

// JsonOK: generic success (detail GETs)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, message, "ok", data)
}

// JsonCreated: 201 (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusCreated, message, "created", data)
}

// JsonUpdated: 200 after update (PUT)
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, message, "updated", data)
}

// JsonDeleted: 200 after delete (DELETE)
func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	return jsonSuccess(c, fiber.StatusOK, message, "deleted", data)
}

func jsonSuccess(c *fiber.Ctx, status int, message, fallback string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
