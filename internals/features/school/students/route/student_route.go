package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "schooldesk_backend/internals/features/school/students/controller"
)

// StudentAuthRoutes mounts the public login endpoint.
func StudentAuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)
	r.Post("/students/login", ctl.LoginStudent) // POST /api/auth/students/login
}

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)
	students := r.Group("/students")
	students.Post("/", ctl.RegisterStudent)      // POST   /api/a/students
	students.Put("/:id", ctl.UpdateStudent)      // PUT    /api/a/students/:id
	students.Delete("/:id", ctl.DeleteStudent)   // DELETE /api/a/students/:id
	students.Delete("/", ctl.DeleteStudents)     // DELETE /api/a/students?school=|?class=
}

// StudentTeacherRoutes mounts attendance and marks writes (admin + teacher).
func StudentTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)
	students := r.Group("/students")
	students.Post("/:id/attendance", ctl.RecordAttendance)     // POST   /api/t/students/:id/attendance
	students.Post("/:id/marks", ctl.RecordExamResult)          // POST   /api/t/students/:id/marks
	students.Delete("/:id/attendance", ctl.ClearAttendance)    // DELETE /api/t/students/:id/attendance?subject=
	students.Delete("/attendance", ctl.ClearAllAttendance)     // DELETE /api/t/students/attendance?subject=
}

func StudentUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)
	students := r.Group("/students")
	students.Get("/", ctl.ListStudents)                      // GET /api/u/students?school=|?class=
	students.Get("/:id", ctl.GetStudent)                     // GET /api/u/students/:id
	students.Get("/:id/attendance", ctl.GetStudentAttendance) // GET /api/u/students/:id/attendance
}
