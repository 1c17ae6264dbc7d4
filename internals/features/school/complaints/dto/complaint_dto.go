package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/complaints/model"
)

type CreateComplaintRequest struct {
	// both forced from the token in the controller
	SchoolID uuid.UUID `json:"school_id"`
	UserID   uuid.UUID `json:"user_id"`

	Text string    `json:"complaint_text" validate:"required,min=1"`
	Date time.Time `json:"complaint_date" validate:"required"`
}

func (r CreateComplaintRequest) ToModel() m.ComplaintModel {
	return m.ComplaintModel{
		ComplaintSchoolID: r.SchoolID,
		ComplaintUserID:   r.UserID,
		ComplaintText:     r.Text,
		ComplaintDate:     r.Date,
	}
}

type ComplaintResponse struct {
	ComplaintID        uuid.UUID `json:"complaint_id"`
	ComplaintSchoolID  uuid.UUID `json:"complaint_school_id"`
	ComplaintUserID    uuid.UUID `json:"complaint_user_id"`
	ComplaintText      string    `json:"complaint_text"`
	ComplaintDate      time.Time `json:"complaint_date"`
	ComplaintCreatedAt time.Time `json:"complaint_created_at"`
}

func FromComplaintModel(mo m.ComplaintModel) ComplaintResponse {
	return ComplaintResponse{
		ComplaintID:        mo.ComplaintID,
		ComplaintSchoolID:  mo.ComplaintSchoolID,
		ComplaintUserID:    mo.ComplaintUserID,
		ComplaintText:      mo.ComplaintText,
		ComplaintDate:      mo.ComplaintDate,
		ComplaintCreatedAt: mo.ComplaintCreatedAt,
	}
}

func FromComplaintModels(rows []m.ComplaintModel) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromComplaintModel(rows[i]))
	}
	return out
}
