package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceEntry is one attendance-taking event for one subject.
// subject_name is denormalized at write time so grouping can label a subject
// even after the row it pointed at is long gone; when it is empty the raw id
// is the label.
type AttendanceEntry struct {
	SubjectID   uuid.UUID  `json:"subject_id"`
	SubjectName string     `json:"subject_name,omitempty"`
	Date        *time.Time `json:"date"`
	Status      string     `json:"status"`
}

type ExamResult struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	Marks       float64   `json:"marks"`
}

// Attendance and exam results live inside the student row as jsonb arrays.
// The cascade engine is the only thing keeping their subject references
// honest after a subject is deleted.
type StudentModel struct {
	StudentID       uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"column:student_school_id;type:uuid;not null;index" json:"student_school_id"`
	StudentClassID  uuid.UUID `gorm:"column:student_class_id;type:uuid;not null;index" json:"student_class_id"`

	StudentName       string `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentRollNumber int    `gorm:"column:student_roll_number;not null" json:"student_roll_number"`
	StudentPassword   string `gorm:"column:student_password;type:varchar(120);not null" json:"-"`

	StudentAttendance  datatypes.JSONSlice[AttendanceEntry] `gorm:"column:student_attendance;type:jsonb" json:"student_attendance"`
	StudentExamResults datatypes.JSONSlice[ExamResult]      `gorm:"column:student_exam_results;type:jsonb" json:"student_exam_results"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
