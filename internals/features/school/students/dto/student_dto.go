package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/features/school/students/service"
)

type RegisterStudentRequest struct {
	// forced from the admin token in the controller
	SchoolID uuid.UUID `json:"school_id"`

	ClassID    uuid.UUID `json:"student_class_id" validate:"required"`
	Name       string    `json:"student_name" validate:"required,min=1,max=120"`
	RollNumber int       `json:"student_roll_number" validate:"required,min=1"`
	Password   string    `json:"student_password" validate:"required,min=6,max=72"`
}

type UpdateStudentRequest struct {
	Name       *string    `json:"student_name" validate:"omitempty,min=1,max=120"`
	RollNumber *int       `json:"student_roll_number" validate:"omitempty,min=1"`
	ClassID    *uuid.UUID `json:"student_class_id"`
	Password   *string    `json:"student_password" validate:"omitempty,min=6,max=72"`
}

func (r UpdateStudentRequest) Apply(mo *m.StudentModel) {
	if r.Name != nil {
		mo.StudentName = *r.Name
	}
	if r.RollNumber != nil {
		mo.StudentRollNumber = *r.RollNumber
	}
	if r.ClassID != nil {
		mo.StudentClassID = *r.ClassID
	}
}

type LoginStudentRequest struct {
	RollNumber int    `json:"student_roll_number" validate:"required"`
	Name       string `json:"student_name" validate:"required"`
	Password   string `json:"student_password" validate:"required"`
}

type RecordAttendanceRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=Present Absent present absent"`
}

type RecordExamResultRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Marks     float64   `json:"marks" validate:"min=0,max=100"`
}

type StudentResponse struct {
	StudentID          uuid.UUID           `json:"student_id"`
	StudentSchoolID    uuid.UUID           `json:"student_school_id"`
	StudentClassID     uuid.UUID           `json:"student_class_id"`
	StudentName        string              `json:"student_name"`
	StudentRollNumber  int                 `json:"student_roll_number"`
	StudentAttendance  []m.AttendanceEntry `json:"student_attendance"`
	StudentExamResults []m.ExamResult      `json:"student_exam_results"`
	StudentCreatedAt   time.Time           `json:"student_created_at"`
	StudentUpdatedAt   time.Time           `json:"student_updated_at"`
}

func FromStudentModel(mo m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:          mo.StudentID,
		StudentSchoolID:    mo.StudentSchoolID,
		StudentClassID:     mo.StudentClassID,
		StudentName:        mo.StudentName,
		StudentRollNumber:  mo.StudentRollNumber,
		StudentAttendance:  mo.StudentAttendance,
		StudentExamResults: mo.StudentExamResults,
		StudentCreatedAt:   mo.StudentCreatedAt,
		StudentUpdatedAt:   mo.StudentUpdatedAt,
	}
}

func FromStudentModels(rows []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStudentModel(rows[i]))
	}
	return out
}

// AttendanceSummaryResponse is the read-time aggregation: per-subject
// buckets with percentages plus the overall figure. Nothing here is stored.
type AttendanceSummaryResponse struct {
	BySubject         map[string]SubjectAttendanceResponse `json:"by_subject"`
	OverallPercentage float64                              `json:"overall_percentage"`
}

type SubjectAttendanceResponse struct {
	Present    int                 `json:"present"`
	Absent     int                 `json:"absent"`
	Sessions   int                 `json:"sessions"`
	Percentage float64             `json:"percentage"`
	Entries    []m.AttendanceEntry `json:"entries"`
}

func BuildAttendanceSummary(entries []m.AttendanceEntry) AttendanceSummaryResponse {
	grouped := service.GroupBySubject(entries)
	bySubject := make(map[string]SubjectAttendanceResponse, len(grouped))
	for label, g := range grouped {
		bySubject[label] = SubjectAttendanceResponse{
			Present:    g.Present,
			Absent:     g.Absent,
			Sessions:   g.Sessions,
			Percentage: service.Percentage(g.Present, g.Sessions),
			Entries:    g.Entries,
		}
	}
	return AttendanceSummaryResponse{
		BySubject:         bySubject,
		OverallPercentage: service.OverallPercentage(entries),
	}
}
