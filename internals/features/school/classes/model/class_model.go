package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID       uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;index" json:"class_school_id"`
	ClassName     string    `gorm:"column:class_name;type:varchar(120);not null" json:"class_name"`

	ClassCreatedAt time.Time `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}
