package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
	schoolDTO "schooldesk_backend/internals/features/school/schools/dto"
	schoolModel "schooldesk_backend/internals/features/school/schools/model"
	helper "schooldesk_backend/internals/helpers"
)

type SchoolController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db, validate: validator.New()}
}

// POST /api/auth/admin/register
// Registering the admin account creates the school tenant.
func (h *SchoolController) RegisterAdmin(c *fiber.Ctx) error {
	var req schoolDTO.RegisterAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.AdminName = strings.TrimSpace(req.AdminName)
	req.AdminEmail = strings.ToLower(strings.TrimSpace(req.AdminEmail))

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	m := schoolModel.SchoolModel{
		SchoolName:          req.SchoolName,
		SchoolAdminName:     req.AdminName,
		SchoolAdminEmail:    req.AdminEmail,
		SchoolAdminPassword: string(hash),
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&schoolModel.SchoolModel{}).
			Where("school_admin_email = ?", req.AdminEmail).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return tx.Create(&m).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register admin")
	}

	return helper.JsonCreated(c, "Admin registered", schoolDTO.FromSchoolModel(m))
}

// POST /api/auth/admin/login
func (h *SchoolController) LoginAdmin(c *fiber.Ctx) error {
	var req schoolDTO.LoginAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.AdminEmail = strings.ToLower(strings.TrimSpace(req.AdminEmail))

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m schoolModel.SchoolModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "school_admin_email = ?", req.AdminEmail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	if bcrypt.CompareHashAndPassword([]byte(m.SchoolAdminPassword), []byte(req.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := helper.SignAccessToken(m.SchoolID, m.SchoolID, constants.RoleAdmin)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonOK(c, "Logged in", schoolDTO.LoginResponse{
		Token: token,
		Role:  constants.RoleAdmin,
		Data:  schoolDTO.FromSchoolModel(m),
	})
}

// GET /api/u/schools/me
func (h *SchoolController) GetMySchool(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var m schoolModel.SchoolModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "No school found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch school")
	}
	return helper.JsonOK(c, "School found", schoolDTO.FromSchoolModel(m))
}
