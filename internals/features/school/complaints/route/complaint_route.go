package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	complaintController "schooldesk_backend/internals/features/school/complaints/controller"
)

func ComplaintAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := complaintController.NewComplaintController(db)
	r.Get("/complaints", ctl.ListComplaints) // GET /api/a/complaints?school=
}

func ComplaintUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := complaintController.NewComplaintController(db)
	r.Post("/complaints", ctl.CreateComplaint) // POST /api/u/complaints
}
