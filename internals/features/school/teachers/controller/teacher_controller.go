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
	classModel "schooldesk_backend/internals/features/school/classes/model"
	schoolDTO "schooldesk_backend/internals/features/school/schools/dto"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	subjectService "schooldesk_backend/internals/features/school/subjects/service"
	teacherDTO "schooldesk_backend/internals/features/school/teachers/dto"
	teacherModel "schooldesk_backend/internals/features/school/teachers/model"
	"schooldesk_backend/internals/features/school/teachers/service"
	helper "schooldesk_backend/internals/helpers"
)

type TeacherController struct {
	DB       *gorm.DB
	Service  *service.TeacherService
	validate *validator.Validate
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{
		DB:       db,
		Service:  service.NewTeacherService(db),
		validate: validator.New(),
	}
}

// POST /api/a/teachers
func (h *TeacherController) RegisterTeacher(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req teacherDTO.RegisterTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	m := teacherModel.TeacherModel{
		TeacherSchoolID:  req.SchoolID,
		TeacherName:      req.Name,
		TeacherEmail:     req.Email,
		TeacherPassword:  string(hash),
		TeacherClassID:   req.ClassID,
		TeacherSubjectID: req.SubjectID,
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&teacherModel.TeacherModel{}).
			Where("teacher_email = ?", req.Email).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if req.SubjectID != nil {
			return tx.Model(&subjectModel.SubjectModel{}).
				Where("subject_id = ?", *req.SubjectID).
				Update("subject_teacher_id", m.TeacherID).Error
		}
		return nil
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register teacher")
	}

	return helper.JsonCreated(c, "Teacher registered", teacherDTO.FromTeacherModel(m))
}

// POST /api/auth/teachers/login
func (h *TeacherController) LoginTeacher(c *fiber.Ctx) error {
	var req teacherDTO.LoginTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m teacherModel.TeacherModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "teacher_email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.TeacherPassword), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := helper.SignAccessToken(m.TeacherID, m.TeacherSchoolID, constants.RoleTeacher)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "Logged in", schoolDTO.LoginResponse{
		Token: token,
		Role:  constants.RoleTeacher,
		Data:  teacherDTO.FromTeacherModel(m),
	})
}

// GET /api/u/teachers?school=ID
func (h *TeacherController) ListTeachers(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	var rows []teacherModel.TeacherModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("teacher_school_id = ?", schoolID).
		Order("teacher_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teachers")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No teachers found")
	}
	return helper.JsonOK(c, "Teachers found", teacherDTO.FromTeacherModels(rows))
}

// GET /api/u/teachers/:id
func (h *TeacherController) GetTeacher(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	db := h.DB.WithContext(c.UserContext())

	var m teacherModel.TeacherModel
	if err := db.First(&m, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "No teacher found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	detail := teacherDTO.TeacherDetailResponse{TeacherResponse: teacherDTO.FromTeacherModel(m)}
	if m.TeacherClassID != nil {
		var cls classModel.ClassModel
		if err := db.First(&cls, "class_id = ?", *m.TeacherClassID).Error; err == nil {
			detail.ClassName = &cls.ClassName
		}
	}
	if m.TeacherSubjectID != nil {
		var sub subjectModel.SubjectModel
		if err := db.First(&sub, "subject_id = ?", *m.TeacherSubjectID).Error; err == nil {
			detail.SubjectName = &sub.SubjectName
		}
	}

	return helper.JsonOK(c, "Teacher found", detail)
}

// PUT /api/a/teachers/:id/subject
func (h *TeacherController) AssignSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var req teacherDTO.AssignSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updated, err := h.Service.AssignSubject(c.UserContext(), id, req.SubjectID)
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		return helper.JsonMessage(c, "Teacher not found")
	case errors.Is(err, subjectService.ErrSubjectNotFound):
		return helper.JsonMessage(c, "Subject not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to assign subject")
	}

	return helper.JsonUpdated(c, "Subject assigned", teacherDTO.FromTeacherModel(updated))
}

// DELETE /api/a/teachers/:id
func (h *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	deleted, err := h.Service.DeleteTeacher(c.UserContext(), id)
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		return helper.JsonMessage(c, "Teacher not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete teacher")
	}

	return helper.JsonDeleted(c, "Teacher deleted", teacherDTO.FromTeacherModel(deleted))
}

// DELETE /api/a/teachers?school=ID | ?class=ID
func (h *TeacherController) DeleteTeachers(c *fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		count, err := h.Service.DeleteTeachersByClass(c.UserContext(), classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete teachers")
		}
		return helper.JsonDeleted(c, "Class teachers deleted", fiber.Map{"deleted_count": count})
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}
	count, err := h.Service.DeleteTeachersBySchool(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete teachers")
	}
	return helper.JsonDeleted(c, "Teachers deleted", fiber.Map{"deleted_count": count})
}

func (h *TeacherController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
