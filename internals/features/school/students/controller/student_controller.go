package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	schoolDTO "schooldesk_backend/internals/features/school/schools/dto"
	studentDTO "schooldesk_backend/internals/features/school/students/dto"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/features/school/students/service"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	helper "schooldesk_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Service  *service.StudentService
	validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{
		DB:       db,
		Service:  service.NewStudentService(db),
		validate: validator.New(),
	}
}

// POST /api/a/students
func (h *StudentController) RegisterStudent(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req studentDTO.RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	m := studentModel.StudentModel{
		StudentSchoolID:   req.SchoolID,
		StudentClassID:    req.ClassID,
		StudentName:       req.Name,
		StudentRollNumber: req.RollNumber,
		StudentPassword:   string(hash),
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_class_id = ? AND student_roll_number = ?", req.ClassID, req.RollNumber).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Roll number already taken in this class")
		}
		return tx.Create(&m).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register student")
	}

	return helper.JsonCreated(c, "Student registered", studentDTO.FromStudentModel(m))
}

// POST /api/auth/students/login
// Students log in with roll number plus name; there is no student email.
func (h *StudentController) LoginStudent(c *fiber.Ctx) error {
	var req studentDTO.LoginStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m studentModel.StudentModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_roll_number = ? AND student_name = ?", req.RollNumber, req.Name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.StudentPassword), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := helper.SignAccessToken(m.StudentID, m.StudentSchoolID, constants.RoleStudent)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "Logged in", schoolDTO.LoginResponse{
		Token: token,
		Role:  constants.RoleStudent,
		Data:  studentDTO.FromStudentModel(m),
	})
}

// GET /api/u/students?school=ID | ?class=ID
func (h *StudentController) ListStudents(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		var rows []studentModel.StudentModel
		if err := db.Where("student_class_id = ?", classID).
			Order("student_roll_number ASC").
			Find(&rows).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
		}
		if len(rows) == 0 {
			return helper.JsonMessage(c, "No students found")
		}
		return helper.JsonOK(c, "Students found", studentDTO.FromStudentModels(rows))
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}
	var rows []studentModel.StudentModel
	if err := db.Where("student_school_id = ?", schoolID).
		Order("student_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No students found")
	}
	return helper.JsonOK(c, "Students found", studentDTO.FromStudentModels(rows))
}

// GET /api/u/students/:id
func (h *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var m studentModel.StudentModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "No student found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return helper.JsonOK(c, "Student found", fiber.Map{
		"student":            studentDTO.FromStudentModel(m),
		"attendance_summary": studentDTO.BuildAttendanceSummary(m.StudentAttendance),
	})
}

// GET /api/u/students/:id/attendance
// Read-time aggregation only; nothing derived is stored.
func (h *StudentController) GetStudentAttendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var m studentModel.StudentModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "No student found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonOK(c, "Attendance found", studentDTO.BuildAttendanceSummary(m.StudentAttendance))
}

// POST /api/t/students/:id/attendance
func (h *StudentController) RecordAttendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentDTO.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	entry := studentModel.AttendanceEntry{
		SubjectID: req.SubjectID,
		Date:      &req.Date,
		Status:    req.Status,
	}
	// denormalize the subject name so summaries stay labeled
	var sub subjectModel.SubjectModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&sub, "subject_id = ?", req.SubjectID).Error; err == nil {
		entry.SubjectName = sub.SubjectName
	}

	updated, err := h.Service.RecordAttendance(c.UserContext(), id, entry)
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, "Student not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}

	return helper.JsonUpdated(c, "Attendance recorded", studentDTO.FromStudentModel(updated))
}

// POST /api/t/students/:id/marks
func (h *StudentController) RecordExamResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentDTO.RecordExamResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	result := studentModel.ExamResult{
		SubjectID: req.SubjectID,
		Marks:     req.Marks,
	}
	var sub subjectModel.SubjectModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&sub, "subject_id = ?", req.SubjectID).Error; err == nil {
		result.SubjectName = sub.SubjectName
	}

	updated, err := h.Service.RecordExamResult(c.UserContext(), id, result)
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, "Student not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record marks")
	}

	return helper.JsonUpdated(c, "Marks recorded", studentDTO.FromStudentModel(updated))
}

// DELETE /api/t/students/:id/attendance?subject=ID
func (h *StudentController) ClearAttendance(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Query("subject")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	err = h.Service.ClearSubjectAttendance(c.UserContext(), id, subjectID)
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, "Student not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear attendance")
	}

	return helper.JsonDeleted(c, "Attendance cleared", fiber.Map{
		"student_id": id,
		"subject_id": subjectID,
	})
}

// DELETE /api/t/students/attendance?subject=ID
// Clears the subject's entries for every student that has any.
func (h *StudentController) ClearAllAttendance(c *fiber.Ctx) error {
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Query("subject")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	if err := h.Service.ClearAllAttendanceBySubject(c.UserContext(), subjectID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear attendance")
	}
	return helper.JsonDeleted(c, "Attendance cleared", fiber.Map{"subject_id": subjectID})
}

// PUT /api/a/students/:id
func (h *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentDTO.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m studentModel.StudentModel
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrStudentNotFound
			}
			return err
		}
		req.Apply(&m)
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			m.StudentPassword = string(hash)
		}
		return tx.Save(&m).Error
	})
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, "Student not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.JsonUpdated(c, "Student updated", studentDTO.FromStudentModel(m))
}

// DELETE /api/a/students/:id
func (h *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var m studentModel.StudentModel
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "student_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrStudentNotFound
			}
			return err
		}
		return tx.Delete(&studentModel.StudentModel{}, "student_id = ?", id).Error
	})
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return helper.JsonMessage(c, "Student not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}

	return helper.JsonDeleted(c, "Student deleted", studentDTO.FromStudentModel(m))
}

// DELETE /api/a/students?school=ID | ?class=ID
func (h *StudentController) DeleteStudents(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		res := db.Delete(&studentModel.StudentModel{}, "student_class_id = ?", classID)
		if res.Error != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete students")
		}
		return helper.JsonDeleted(c, "Class students deleted", fiber.Map{"deleted_count": res.RowsAffected})
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}
	res := db.Delete(&studentModel.StudentModel{}, "student_school_id = ?", schoolID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete students")
	}
	return helper.JsonDeleted(c, "Students deleted", fiber.Map{"deleted_count": res.RowsAffected})
}

func (h *StudentController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
