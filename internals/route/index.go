package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"churchbook_backend/internals/configs"
	attendanceRoutes "churchbook_backend/internals/features/attendance/attendance/route"
	calendarRoutes "churchbook_backend/internals/features/calendars/events/route"
	churchRoutes "churchbook_backend/internals/features/churches/churches/route"
	cellRoutes "churchbook_backend/internals/features/communities/cells/route"
	groupRoutes "churchbook_backend/internals/features/communities/groups/route"
	noticeRoutes "churchbook_backend/internals/features/notices/notices/route"
	authRoutes "churchbook_backend/internals/features/users/auth/route"
	userRoutes "churchbook_backend/internals/features/users/users/route"
	helperAuth "churchbook_backend/internals/helpers/auth"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

var startTime time.Time

// SetupRoutes mounts everything under /api/v1. Routes that do not take an access
// token are registered before AuthJWT.
func SetupRoutes(app *fiber.App, store repository.Store, signer *helperAuth.Signer, cfg *configs.Config, log *zap.Logger, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, cfg.AppEnv, dbPing(db))

	api := app.Group("/api/v1")

	// ===================== PUBLIC =====================
	log.Info("[INFO] Setting up church admin routes...")
	churchRoutes.ChurchAdminRoutes(api, store, cfg.AdminAPIKey)

	log.Info("[INFO] Setting up auth routes...")
	authRoutes.AuthRoutes(api, store, signer)

	// ===================== PRIVATE =====================
	if signer == nil {
		log.Error("JWT secrets missing, protected routes will reject every request")
		api.Use(func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "인증 설정이 올바르지 않습니다")
		})
		return
	}
	private := api.Group("", authMiddleware.AuthJWT(signer, log))

	log.Info("[INFO] Mounting community routes...")
	churchRoutes.ChurchUserRoutes(private, store)
	userRoutes.UserRoutes(private, store)
	groupRoutes.GroupRoutes(private, store)
	cellRoutes.CellRoutes(private, store)

	log.Info("[INFO] Mounting notice / calendar / attendance routes...")
	noticeRoutes.NoticeRoutes(private, store)
	calendarRoutes.CalendarRoutes(private, store)
	attendanceRoutes.AttendanceRoutes(private, store)
}
