package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoticeModel struct {
	NoticeID       uuid.UUID `gorm:"column:notice_id;type:uuid;primaryKey" json:"notice_id"`
	NoticeSchoolID uuid.UUID `gorm:"column:notice_school_id;type:uuid;not null;index" json:"notice_school_id"`

	NoticeTitle   string    `gorm:"column:notice_title;type:varchar(200);not null" json:"notice_title"`
	NoticeDetails string    `gorm:"column:notice_details;type:text;not null" json:"notice_details"`
	NoticeDate    time.Time `gorm:"column:notice_date;not null" json:"notice_date"`

	NoticeCreatedAt time.Time `gorm:"column:notice_created_at;not null;autoCreateTime" json:"notice_created_at"`
	NoticeUpdatedAt time.Time `gorm:"column:notice_updated_at;not null;autoUpdateTime" json:"notice_updated_at"`
}

func (NoticeModel) TableName() string { return "notices" }

func (m *NoticeModel) BeforeCreate(tx *gorm.DB) error {
	if m.NoticeID == uuid.Nil {
		m.NoticeID = uuid.New()
	}
	return nil
}
