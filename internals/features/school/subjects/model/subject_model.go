package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// subject_code is unique per school; the unique index backs up the
// application-level check in the subject service.
type SubjectModel struct {
	SubjectID       uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectSchoolID uuid.UUID `gorm:"column:subject_school_id;type:uuid;not null;index;uniqueIndex:uq_subject_code_per_school" json:"subject_school_id"`
	SubjectClassID  uuid.UUID `gorm:"column:subject_class_id;type:uuid;not null;index" json:"subject_class_id"`

	SubjectName     string `gorm:"column:subject_name;type:varchar(120);not null" json:"subject_name"`
	SubjectCode     string `gorm:"column:subject_code;type:varchar(40);not null;uniqueIndex:uq_subject_code_per_school" json:"subject_code"`
	SubjectSessions int    `gorm:"column:subject_sessions;not null;default:0" json:"subject_sessions"`

	// nil while the subject is free (no teacher assigned)
	SubjectTeacherID *uuid.UUID `gorm:"column:subject_teacher_id;type:uuid;index" json:"subject_teacher_id,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;not null;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;not null;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
