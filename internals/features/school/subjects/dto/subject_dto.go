package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/subjects/model"
	"schooldesk_backend/internals/features/school/subjects/service"
)

/* =========================================================
   CREATE (batch)
   ========================================================= */

type SubjectPair struct {
	Name     string `json:"subject_name" validate:"required,min=1,max=120"`
	Code     string `json:"subject_code" validate:"required,min=1,max=40"`
	Sessions int    `json:"subject_sessions" validate:"omitempty,min=0"`
}

type CreateSubjectsRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
	// forced from the token in the controller, never trusted from payload
	SchoolID uuid.UUID     `json:"school_id"`
	Subjects []SubjectPair `json:"subjects" validate:"required,min=1,dive"`
}

func (r CreateSubjectsRequest) ToInputs() []service.SubjectInput {
	inputs := make([]service.SubjectInput, 0, len(r.Subjects))
	for _, p := range r.Subjects {
		inputs = append(inputs, service.SubjectInput{
			Name:     p.Name,
			Code:     p.Code,
			Sessions: p.Sessions,
		})
	}
	return inputs
}

/* =========================================================
   RESPONSES
   ========================================================= */

type SubjectResponse struct {
	SubjectID        uuid.UUID  `json:"subject_id"`
	SubjectSchoolID  uuid.UUID  `json:"subject_school_id"`
	SubjectClassID   uuid.UUID  `json:"subject_class_id"`
	SubjectName      string     `json:"subject_name"`
	SubjectCode      string     `json:"subject_code"`
	SubjectSessions  int        `json:"subject_sessions"`
	SubjectTeacherID *uuid.UUID `json:"subject_teacher_id,omitempty"`
	SubjectCreatedAt time.Time  `json:"subject_created_at"`
	SubjectUpdatedAt time.Time  `json:"subject_updated_at"`
}

func FromSubjectModel(mo m.SubjectModel) SubjectResponse {
	return SubjectResponse{
		SubjectID:        mo.SubjectID,
		SubjectSchoolID:  mo.SubjectSchoolID,
		SubjectClassID:   mo.SubjectClassID,
		SubjectName:      mo.SubjectName,
		SubjectCode:      mo.SubjectCode,
		SubjectSessions:  mo.SubjectSessions,
		SubjectTeacherID: mo.SubjectTeacherID,
		SubjectCreatedAt: mo.SubjectCreatedAt,
		SubjectUpdatedAt: mo.SubjectUpdatedAt,
	}
}

func FromSubjectModels(rows []m.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromSubjectModel(rows[i]))
	}
	return out
}

// SubjectWithClassResponse is the school-wide listing shape: subject plus
// resolved class name.
type SubjectWithClassResponse struct {
	SubjectResponse
	ClassName string `json:"class_name"`
}

func FromSubjectsWithClass(rows []service.SubjectWithClass) []SubjectWithClassResponse {
	out := make([]SubjectWithClassResponse, 0, len(rows))
	for i := range rows {
		out = append(out, SubjectWithClassResponse{
			SubjectResponse: FromSubjectModel(rows[i].SubjectModel),
			ClassName:       rows[i].ClassName,
		})
	}
	return out
}

// SubjectDetailResponse carries the resolved class and teacher names next
// to the raw references.
type SubjectDetailResponse struct {
	SubjectResponse
	ClassName   string  `json:"class_name"`
	TeacherName *string `json:"teacher_name,omitempty"`
}

func FromSubjectDetail(d service.SubjectDetail) SubjectDetailResponse {
	return SubjectDetailResponse{
		SubjectResponse: FromSubjectModel(d.Subject),
		ClassName:       d.ClassName,
		TeacherName:     d.TeacherName,
	}
}

/* =========================================================
   BULK DELETE
   ========================================================= */

type DeleteSubjectsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}
