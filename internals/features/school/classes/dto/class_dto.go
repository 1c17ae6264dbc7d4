package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/classes/model"
)

type CreateClassRequest struct {
	// forced from the token in the controller
	SchoolID uuid.UUID `json:"school_id"`
	Name     string    `json:"class_name" validate:"required,min=1,max=120"`
}

func (r CreateClassRequest) ToModel() m.ClassModel {
	return m.ClassModel{
		ClassSchoolID: r.SchoolID,
		ClassName:     r.Name,
	}
}

type ClassResponse struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassSchoolID  uuid.UUID `json:"class_school_id"`
	ClassName      string    `json:"class_name"`
	ClassCreatedAt time.Time `json:"class_created_at"`
	ClassUpdatedAt time.Time `json:"class_updated_at"`
}

func FromClassModel(mo m.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:        mo.ClassID,
		ClassSchoolID:  mo.ClassSchoolID,
		ClassName:      mo.ClassName,
		ClassCreatedAt: mo.ClassCreatedAt,
		ClassUpdatedAt: mo.ClassUpdatedAt,
	}
}

func FromClassModels(rows []m.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromClassModel(rows[i]))
	}
	return out
}

// ClassDetailResponse adds the headcounts shown on the class page.
type ClassDetailResponse struct {
	ClassResponse
	SubjectCount int64 `json:"subject_count"`
	StudentCount int64 `json:"student_count"`
}
