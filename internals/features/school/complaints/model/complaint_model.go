package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintModel struct {
	ComplaintID       uuid.UUID `gorm:"column:complaint_id;type:uuid;primaryKey" json:"complaint_id"`
	ComplaintSchoolID uuid.UUID `gorm:"column:complaint_school_id;type:uuid;not null;index" json:"complaint_school_id"`
	ComplaintUserID   uuid.UUID `gorm:"column:complaint_user_id;type:uuid;not null;index" json:"complaint_user_id"`

	ComplaintText string    `gorm:"column:complaint_text;type:text;not null" json:"complaint_text"`
	ComplaintDate time.Time `gorm:"column:complaint_date;not null" json:"complaint_date"`

	ComplaintCreatedAt time.Time `gorm:"column:complaint_created_at;not null;autoCreateTime" json:"complaint_created_at"`
	ComplaintUpdatedAt time.Time `gorm:"column:complaint_updated_at;not null;autoUpdateTime" json:"complaint_updated_at"`
}

func (ComplaintModel) TableName() string { return "complaints" }

func (m *ComplaintModel) BeforeCreate(tx *gorm.DB) error {
	if m.ComplaintID == uuid.Nil {
		m.ComplaintID = uuid.New()
	}
	return nil
}
