package route

import (
	"github.com/gofiber/fiber/v2"

	commentController "churchbook_backend/internals/features/notices/notice_comments/controller"
	commentService "churchbook_backend/internals/features/notices/notice_comments/service"
	"churchbook_backend/internals/features/notices/notices/controller"
	"churchbook_backend/internals/features/notices/notices/service"
	authMiddleware "churchbook_backend/internals/middlewares/auth"
	"churchbook_backend/internals/repository"
)

func NoticeRoutes(r fiber.Router, store repository.Store) {
	ctl := controller.NewNoticeController(service.NewNoticeService(store))
	comments := commentController.NewCommentController(commentService.NewCommentService(store))

	notices := r.Group("/notices")
	notices.Get("/", ctl.List)
	notices.Get("/:id", ctl.Get)
	notices.Post("/", authMiddleware.OnlyLeaders("공지 작성"), ctl.Create)
	notices.Put("/:id", ctl.Update)
	notices.Delete("/:id", ctl.Delete)

	// ===== comments =====
	notices.Get("/:noticeId/comments", comments.Tree)
	notices.Post("/:noticeId/comments", comments.Create)

	nc := r.Group("/notice-comments")
	nc.Put("/:id", comments.Update)
	nc.Delete("/:id", comments.Delete)
}
