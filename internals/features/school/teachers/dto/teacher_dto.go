package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/teachers/model"
)

type RegisterTeacherRequest struct {
	// forced from the admin token in the controller
	SchoolID uuid.UUID `json:"school_id"`

	Name     string `json:"teacher_name" validate:"required,min=1,max=120"`
	Email    string `json:"teacher_email" validate:"required,email,max=120"`
	Password string `json:"teacher_password" validate:"required,min=6,max=72"`

	// optional initial assignment
	ClassID   *uuid.UUID `json:"teacher_class_id"`
	SubjectID *uuid.UUID `json:"teacher_subject_id"`
}

type LoginTeacherRequest struct {
	Email    string `json:"teacher_email" validate:"required,email"`
	Password string `json:"teacher_password" validate:"required"`
}

type AssignSubjectRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
}

type TeacherResponse struct {
	TeacherID        uuid.UUID  `json:"teacher_id"`
	TeacherSchoolID  uuid.UUID  `json:"teacher_school_id"`
	TeacherName      string     `json:"teacher_name"`
	TeacherEmail     string     `json:"teacher_email"`
	TeacherClassID   *uuid.UUID `json:"teacher_class_id,omitempty"`
	TeacherSubjectID *uuid.UUID `json:"teacher_subject_id,omitempty"`
	TeacherCreatedAt time.Time  `json:"teacher_created_at"`
	TeacherUpdatedAt time.Time  `json:"teacher_updated_at"`
}

func FromTeacherModel(mo m.TeacherModel) TeacherResponse {
	return TeacherResponse{
		TeacherID:        mo.TeacherID,
		TeacherSchoolID:  mo.TeacherSchoolID,
		TeacherName:      mo.TeacherName,
		TeacherEmail:     mo.TeacherEmail,
		TeacherClassID:   mo.TeacherClassID,
		TeacherSubjectID: mo.TeacherSubjectID,
		TeacherCreatedAt: mo.TeacherCreatedAt,
		TeacherUpdatedAt: mo.TeacherUpdatedAt,
	}
}

func FromTeacherModels(rows []m.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromTeacherModel(rows[i]))
	}
	return out
}

// TeacherDetailResponse resolves the assignment for display.
type TeacherDetailResponse struct {
	TeacherResponse
	ClassName   *string `json:"class_name,omitempty"`
	SubjectName *string `json:"subject_name,omitempty"`
}
