package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// teacher_subject_id is the back-reference the cascade engine clears when
// the subject is deleted; the teacher row itself survives ("free" teacher).
type TeacherModel struct {
	TeacherID       uuid.UUID `gorm:"column:teacher_id;type:uuid;primaryKey" json:"teacher_id"`
	TeacherSchoolID uuid.UUID `gorm:"column:teacher_school_id;type:uuid;not null;index" json:"teacher_school_id"`

	TeacherName     string `gorm:"column:teacher_name;type:varchar(120);not null" json:"teacher_name"`
	TeacherEmail    string `gorm:"column:teacher_email;type:varchar(120);not null;uniqueIndex" json:"teacher_email"`
	TeacherPassword string `gorm:"column:teacher_password;type:varchar(120);not null" json:"-"`

	TeacherClassID   *uuid.UUID `gorm:"column:teacher_class_id;type:uuid;index" json:"teacher_class_id,omitempty"`
	TeacherSubjectID *uuid.UUID `gorm:"column:teacher_subject_id;type:uuid;index" json:"teacher_subject_id,omitempty"`

	TeacherCreatedAt time.Time `gorm:"column:teacher_created_at;not null;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time `gorm:"column:teacher_updated_at;not null;autoUpdateTime" json:"teacher_updated_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}
