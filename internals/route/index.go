package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	classRoute "schooldesk_backend/internals/features/school/classes/route"
	complaintRoute "schooldesk_backend/internals/features/school/complaints/route"
	noticeRoute "schooldesk_backend/internals/features/school/notices/route"
	schoolRoute "schooldesk_backend/internals/features/school/schools/route"
	studentRoute "schooldesk_backend/internals/features/school/students/route"
	subjectRoute "schooldesk_backend/internals/features/school/subjects/route"
	teacherRoute "schooldesk_backend/internals/features/school/teachers/route"
	"schooldesk_backend/internals/middlewares"
	authMiddleware "schooldesk_backend/internals/middlewares/auth"
)

// SetupRoutes mounts four groups:
//
//	/api/auth  public  (register + logins, rate limited)
//	/api/a     admin   (tenant management, cascade deletes)
//	/api/t     admin + teacher (attendance and marks writes)
//	/api/u     any authenticated role (reads)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	jwtAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	log.Println("[INFO] Setting up AUTH group...")
	authGroup := app.Group("/api/auth", middlewares.LoginRateLimiter())
	schoolRoute.SchoolAuthRoutes(authGroup, db)
	teacherRoute.TeacherAuthRoutes(authGroup, db)
	studentRoute.StudentAuthRoutes(authGroup, db)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		jwtAuth,
		authMiddleware.RequireRoles(constants.RoleAdmin),
	)
	classRoute.ClassAdminRoutes(admin, db)
	subjectRoute.SubjectAdminRoutes(admin, db)
	teacherRoute.TeacherAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
	noticeRoute.NoticeAdminRoutes(admin, db)
	complaintRoute.ComplaintAdminRoutes(admin, db)

	log.Println("[INFO] Setting up TEACHER group...")
	teaching := app.Group("/api/t",
		jwtAuth,
		authMiddleware.RequireRoles(constants.RoleAdmin, constants.RoleTeacher),
	)
	studentRoute.StudentTeacherRoutes(teaching, db)

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", jwtAuth)
	schoolRoute.SchoolUserRoutes(user, db)
	classRoute.ClassUserRoutes(user, db)
	subjectRoute.SubjectUserRoutes(user, db)
	teacherRoute.TeacherUserRoutes(user, db)
	studentRoute.StudentUserRoutes(user, db)
	noticeRoute.NoticeUserRoutes(user, db)
	complaintRoute.ComplaintUserRoutes(user, db)
}
