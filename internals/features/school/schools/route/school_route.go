package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "schooldesk_backend/internals/features/school/schools/controller"
)

// SchoolAuthRoutes mounts the public admin register/login endpoints.
func SchoolAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := schoolController.NewSchoolController(db)
	r.Post("/admin/register", ctl.RegisterAdmin) // POST /api/auth/admin/register
	r.Post("/admin/login", ctl.LoginAdmin)       // POST /api/auth/admin/login
}

func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := schoolController.NewSchoolController(db)
	r.Get("/schools/me", ctl.GetMySchool) // GET /api/u/schools/me
}
