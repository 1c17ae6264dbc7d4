package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	noticeDTO "schooldesk_backend/internals/features/school/notices/dto"
	noticeModel "schooldesk_backend/internals/features/school/notices/model"
	helper "schooldesk_backend/internals/helpers"
)

type NoticeController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewNoticeController(db *gorm.DB) *NoticeController {
	return &NoticeController{DB: db, validate: validator.New()}
}

// POST /api/a/notices
func (h *NoticeController) CreateNotice(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	var req noticeDTO.CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.SchoolID = schoolID
	req.Title = strings.TrimSpace(req.Title)

	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notice")
	}
	return helper.JsonCreated(c, "Notice created", noticeDTO.FromNoticeModel(m))
}

// GET /api/u/notices?school=ID&page=&per_page=
func (h *NoticeController) ListNotices(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	db := h.DB.WithContext(c.UserContext()).
		Model(&noticeModel.NoticeModel{}).
		Where("notice_school_id = ?", schoolID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notices")
	}
	if total == 0 {
		return helper.JsonMessage(c, "No notices found")
	}

	var rows []noticeModel.NoticeModel
	if err := db.Order("notice_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notices")
	}

	return helper.JsonList(c, "Notices found",
		noticeDTO.FromNoticeModels(rows),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// PUT /api/a/notices/:id
func (h *NoticeController) UpdateNotice(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notice id")
	}

	var req noticeDTO.UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m noticeModel.NoticeModel
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "notice_id = ?", id).Error; err != nil {
			return err
		}
		req.Apply(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice")
	}

	return helper.JsonUpdated(c, "Notice updated", noticeDTO.FromNoticeModel(m))
}

// DELETE /api/a/notices/:id
func (h *NoticeController) DeleteNotice(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notice id")
	}

	var m noticeModel.NoticeModel
	err = h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "notice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&noticeModel.NoticeModel{}, "notice_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonMessage(c, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notice")
	}

	return helper.JsonDeleted(c, "Notice deleted", noticeDTO.FromNoticeModel(m))
}

// DELETE /api/a/notices?school=ID
func (h *NoticeController) DeleteNotices(c *fiber.Ctx) error {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid school id")
	}

	res := h.DB.WithContext(c.UserContext()).
		Delete(&noticeModel.NoticeModel{}, "notice_school_id = ?", schoolID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notices")
	}
	return helper.JsonDeleted(c, "Notices deleted", fiber.Map{"deleted_count": res.RowsAffected})
}

func (h *NoticeController) resolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.Query("school")); raw != "" {
		return uuid.Parse(raw)
	}
	return helper.GetSchoolIDFromToken(c)
}
