package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "schooldesk_backend/internals/features/school/classes/dto"
	classModel "schooldesk_backend/internals/features/school/classes/model"
	"schooldesk_backend/internals/features/school/classes/service"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	subjectModel "schooldesk_backend/internals/features/school/subjects/model"
	helper "schooldesk_backend/internals/helpers"
)

type ClassController struct {
	DB       *gorm.DB
	Service  *service.ClassService
	validate *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:       db,
		Service:  service.NewClassService(db),
		validate: validator.New(),
	}
}

// POST /api/a/classes
func (h *ClassController) CreateClass(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID
	req.Name = strings.TrimSpace(req.Name)

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.JsonCreated(c, "Class created", classDTO.FromClassModel(m))
}

// GET /api/u/classes?school=ID
func (h *ClassController) ListClasses(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	var rows []classModel.ClassModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("class_school_id = ?", schoolID).
		Order("class_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No classes found")
	}
	return helper.JsonOK(c, "Classes found", classDTO.FromClassModels(rows))
}

// GET /api/u/classes/:id
func (h *ClassController) GetClass(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	db := h.DB.WithContext(c.UserContext())

	var m classModel.ClassModel
	if err := db.First(&m, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "No class found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	detail := classDTO.ClassDetailResponse{ClassResponse: classDTO.FromClassModel(m)}
	if err := db.Model(&subjectModel.SubjectModel{}).
		Where("subject_class_id = ?", id).
		Count(&detail.SubjectCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_class_id = ?", id).
		Count(&detail.StudentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	return helper.JsonOK(c, "Class found", detail)
}

// DELETE /api/a/classes/:id
// Cascades the class's subjects and removes its students.
func (h *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	deleted, err := h.Service.DeleteClass(c.UserContext(), id)
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		return helper.JsonMessage(c, "Class not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}

	return helper.JsonDeleted(c, "Class deleted", classDTO.FromClassModel(deleted))
}

// DELETE /api/a/classes?school=ID
func (h *ClassController) DeleteClasses(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	count, err := h.Service.DeleteClassesBySchool(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete classes")
	}
	return helper.JsonDeleted(c, "Classes deleted", fiber.Map{"deleted_count": count})
}

func (h *ClassController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
