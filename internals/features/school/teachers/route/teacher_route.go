package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teacherController "schooldesk_backend/internals/features/school/teachers/controller"
)

// TeacherAuthRoutes mounts the public login endpoint.
func TeacherAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := teacherController.NewTeacherController(db)
	r.Post("/teachers/login", ctl.LoginTeacher) // POST /api/auth/teachers/login
}

func TeacherAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := teacherController.NewTeacherController(db)
	teachers := r.Group("/teachers")
	teachers.Post("/", ctl.RegisterTeacher)           // POST   /api/a/teachers
	teachers.Put("/:id/subject", ctl.AssignSubject)   // PUT    /api/a/teachers/:id/subject
	teachers.Delete("/:id", ctl.DeleteTeacher)        // DELETE /api/a/teachers/:id
	teachers.Delete("/", ctl.DeleteTeachers)          // DELETE /api/a/teachers?school=|?class=
}

func TeacherUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := teacherController.NewTeacherController(db)
	teachers := r.Group("/teachers")
	teachers.Get("/", ctl.ListTeachers)  // GET /api/u/teachers?school=
	teachers.Get("/:id", ctl.GetTeacher) // GET /api/u/teachers/:id
}
