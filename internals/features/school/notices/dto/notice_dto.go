package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/notices/model"
)

type CreateNoticeRequest struct {
	// forced from the token in the controller
	SchoolID uuid.UUID `json:"school_id"`

	Title   string    `json:"notice_title" validate:"required,min=1,max=200"`
	Details string    `json:"notice_details" validate:"required,min=1"`
	Date    time.Time `json:"notice_date" validate:"required"`
}

func (r CreateNoticeRequest) ToModel() m.NoticeModel {
	return m.NoticeModel{
		NoticeSchoolID: r.SchoolID,
		NoticeTitle:    r.Title,
		NoticeDetails:  r.Details,
		NoticeDate:     r.Date,
	}
}

type UpdateNoticeRequest struct {
	Title   *string    `json:"notice_title" validate:"omitempty,min=1,max=200"`
	Details *string    `json:"notice_details" validate:"omitempty,min=1"`
	Date    *time.Time `json:"notice_date"`
}

func (r UpdateNoticeRequest) Apply(mo *m.NoticeModel) {
	if r.Title != nil {
		mo.NoticeTitle = *r.Title
	}
	if r.Details != nil {
		mo.NoticeDetails = *r.Details
	}
	if r.Date != nil {
		mo.NoticeDate = *r.Date
	}
}

type NoticeResponse struct {
	NoticeID        uuid.UUID `json:"notice_id"`
	NoticeSchoolID  uuid.UUID `json:"notice_school_id"`
	NoticeTitle     string    `json:"notice_title"`
	NoticeDetails   string    `json:"notice_details"`
	NoticeDate      time.Time `json:"notice_date"`
	NoticeCreatedAt time.Time `json:"notice_created_at"`
	NoticeUpdatedAt time.Time `json:"notice_updated_at"`
}

func FromNoticeModel(mo m.NoticeModel) NoticeResponse {
	return NoticeResponse{
		NoticeID:        mo.NoticeID,
		NoticeSchoolID:  mo.NoticeSchoolID,
		NoticeTitle:     mo.NoticeTitle,
		NoticeDetails:   mo.NoticeDetails,
		NoticeDate:      mo.NoticeDate,
		NoticeCreatedAt: mo.NoticeCreatedAt,
		NoticeUpdatedAt: mo.NoticeUpdatedAt,
	}
}

func FromNoticeModels(rows []m.NoticeModel) []NoticeResponse {
	out := make([]NoticeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromNoticeModel(rows[i]))
	}
	return out
}
