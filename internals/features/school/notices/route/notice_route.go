package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	noticeController "schooldesk_backend/internals/features/school/notices/controller"
)

func NoticeAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := noticeController.NewNoticeController(db)
	notices := r.Group("/notices")
	notices.Post("/", ctl.CreateNotice)      // POST   /api/a/notices
	notices.Put("/:id", ctl.UpdateNotice)    // PUT    /api/a/notices/:id
	notices.Delete("/:id", ctl.DeleteNotice) // DELETE /api/a/notices/:id
	notices.Delete("/", ctl.DeleteNotices)   // DELETE /api/a/notices?school=
}

func NoticeUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := noticeController.NewNoticeController(db)
	r.Get("/notices", ctl.ListNotices) // GET /api/u/notices?school=
}
