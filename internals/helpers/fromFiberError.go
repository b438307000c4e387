package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"churchbook_backend/internals/repository"
)

// FromRepoError turns repository sentinels into status errors. notFound is the 404
// message; other unknown errors pass through untouched so the error handler logs them.
func FromRepoError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, "이미 존재하는 데이터입니다")
	case errors.Is(err, repository.ErrForeignKey):
		return fiber.NewError(fiber.StatusBadRequest, "참조 중인 데이터가 있습니다")
	}
	return err
}

// ErrorHandler renders every error returned by a handler in the JsonError shape.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}
			return JsonError(c, fe.Code, fe.Message)
		}

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return JsonValidationError(c, ValidationFields(ve))
		}

		if isRepoSentinel(err) {
			_ = errors.As(FromRepoError(err, "데이터를 찾을 수 없습니다"), &fe)
			return JsonError(c, fe.Code, fe.Message)
		}

		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("reqid", c.Locals("reqid")),
			zap.Error(err),
		)
		return JsonError(c, fiber.StatusInternalServerError, "")
	}
}

func isRepoSentinel(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrConflict) ||
		errors.Is(err, repository.ErrForeignKey)
}
