package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectDTO "schooldesk_backend/internals/features/school/subjects/dto"
	"schooldesk_backend/internals/features/school/subjects/service"
	helper "schooldesk_backend/internals/helpers"
)

type SubjectController struct {
	DB       *gorm.DB
	Service  *service.SubjectService
	Cascade  *service.CascadeService
	validate *validator.Validate
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{
		DB:       db,
		Service:  service.NewSubjectService(db),
		Cascade:  service.NewCascadeService(db),
		validate: validator.New(),
	}
}

// POST /api/a/subjects
// Batch create: one request may carry many {name, code} pairs for one class.
func (h *SubjectController) CreateSubjects(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req subjectDTO.CreateSubjectsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rows, err := h.Service.CreateBatch(c.UserContext(), req.SchoolID, req.ClassID, req.ToInputs())
	switch {
	case errors.Is(err, service.ErrEmptyBatch):
		return helper.JsonError(c, fiber.StatusBadRequest, "Subjects array is required")
	case errors.Is(err, service.ErrDuplicateCode):
		// soft outcome: callers branch on the message, not the status
		return helper.JsonMessage(c, "Sorry, this subject code must be unique as it already exists")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create subjects")
	}

	return helper.JsonCreated(c, "Subjects created", subjectDTO.FromSubjectModels(rows))
}

// GET /api/u/subjects?school=ID | ?class=ID
func (h *SubjectController) ListSubjects(c *fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		rows, err := h.Service.ListByClass(c.UserContext(), classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subjects")
		}
		if len(rows) == 0 {
			return helper.JsonMessage(c, "No subjects found")
		}
		return helper.JsonOK(c, "Subjects found", subjectDTO.FromSubjectModels(rows))
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}
	rows, err := h.Service.ListBySchool(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subjects")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No subjects found")
	}
	return helper.JsonOK(c, "Subjects found", subjectDTO.FromSubjectsWithClass(rows))
}

// GET /api/u/subjects/free?class=ID
func (h *SubjectController) ListFreeSubjects(c *fiber.Ctx) error {
	classID, err := uuid.Parse(strings.TrimSpace(c.Query("class")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	rows, err := h.Service.ListFreeByClass(c.UserContext(), classID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subjects")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No subjects found")
	}
	return helper.JsonOK(c, "Subjects found", subjectDTO.FromSubjectModels(rows))
}

// GET /api/u/subjects/:id
// Detail with the class and teacher references resolved to display names.
func (h *SubjectController) GetSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	detail, err := h.Service.Detail(c.UserContext(), id)
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return helper.JsonMessage(c, "No subject found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	return helper.JsonOK(c, "Subject found", subjectDTO.FromSubjectDetail(detail))
}

// DELETE /api/a/subjects/:id
func (h *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject id")
	}

	deleted, err := h.Cascade.DeleteSubject(c.UserContext(), id)
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return helper.JsonMessage(c, "Subject not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete subject")
	}

	return helper.JsonDeleted(c, "Subject deleted", subjectDTO.FromSubjectModel(deleted))
}

// DELETE /api/a/subjects?school=ID | ?class=ID
func (h *SubjectController) DeleteSubjects(c *fiber.Ctx) error {
	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
		}
		count, err := h.Cascade.DeleteSubjectsByClass(c.UserContext(), classID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete subjects")
		}
		return helper.JsonDeleted(c, "Class subjects deleted", subjectDTO.DeleteSubjectsResponse{DeletedCount: count})
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}
	count, err := h.Cascade.DeleteSubjectsBySchool(c.UserContext(), schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete subjects")
	}
	return helper.JsonDeleted(c, "Subjects deleted", subjectDTO.DeleteSubjectsResponse{DeletedCount: count})
}

// school comes from ?school= when present, otherwise from the token
func (h *SubjectController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
