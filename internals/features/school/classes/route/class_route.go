package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "schooldesk_backend/internals/features/school/classes/controller"
)

func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := classController.NewClassController(db)
	classes := r.Group("/classes")
	classes.Post("/", ctl.CreateClass)       // POST   /api/a/classes
	classes.Delete("/:id", ctl.DeleteClass)  // DELETE /api/a/classes/:id
	classes.Delete("/", ctl.DeleteClasses)   // DELETE /api/a/classes?school=
}

func ClassUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := classController.NewClassController(db)
	classes := r.Group("/classes")
	classes.Get("/", ctl.ListClasses)  // GET /api/u/classes?school=
	classes.Get("/:id", ctl.GetClass)  // GET /api/u/classes/:id
}
