package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	complaintDTO "schooldesk_backend/internals/features/school/complaints/dto"
	complaintModel "schooldesk_backend/internals/features/school/complaints/model"
	helper "schooldesk_backend/internals/helpers"
)

type ComplaintController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewComplaintController(db *gorm.DB) *ComplaintController {
	return &ComplaintController{DB: db, validate: validator.New()}
}

// POST /api/u/complaints
func (h *ComplaintController) CreateComplaint(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req complaintDTO.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID
	req.UserID = userID
	req.Text = strings.TrimSpace(req.Text)

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create complaint")
	}
	return helper.JsonCreated(c, "Complaint created", complaintDTO.FromComplaintModel(m))
}

// GET /api/a/complaints?school=ID
func (h *ComplaintController) ListComplaints(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	var rows []complaintModel.ComplaintModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("complaint_school_id = ?", schoolID).
		Order("complaint_date DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch complaints")
	}
	if len(rows) == 0 {
		return helper.JsonMessage(c, "No complaints found")
	}
	return helper.JsonOK(c, "Complaints found", complaintDTO.FromComplaintModels(rows))
}

func (h *ComplaintController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
