package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectController "schooldesk_backend/internals/features/school/subjects/controller"
)

// SubjectAdminRoutes mounts write endpoints (batch create, cascade deletes).
func SubjectAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db)
	subjects := r.Group("/subjects")
	subjects.Post("/", ctl.CreateSubjects)       // POST   /api/a/subjects
	subjects.Delete("/:id", ctl.DeleteSubject)   // DELETE /api/a/subjects/:id
	subjects.Delete("/", ctl.DeleteSubjects)     // DELETE /api/a/subjects?school=|?class=
}

// SubjectUserRoutes mounts read-only endpoints for any authenticated role.
func SubjectUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := subjectController.NewSubjectController(db)
	subjects := r.Group("/subjects")
	subjects.Get("/", ctl.ListSubjects)          // GET /api/u/subjects?school=|?class=
	subjects.Get("/free", ctl.ListFreeSubjects)  // GET /api/u/subjects/free?class=
	subjects.Get("/:id", ctl.GetSubject)         // GET /api/u/subjects/:id
}
