package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One row per tenant. Registering an admin account creates the school;
// every other entity hangs off school_id.
type SchoolModel struct {
	SchoolID            uuid.UUID `gorm:"column:school_id;type:uuid;primaryKey" json:"school_id"`
	SchoolName          string    `gorm:"column:school_name;type:varchar(120);not null" json:"school_name"`
	SchoolAdminName     string    `gorm:"column:school_admin_name;type:varchar(120);not null" json:"school_admin_name"`
	SchoolAdminEmail    string    `gorm:"column:school_admin_email;type:varchar(120);not null;uniqueIndex" json:"school_admin_email"`
	SchoolAdminPassword string    `gorm:"column:school_admin_password;type:varchar(120);not null" json:"-"`

	SchoolCreatedAt time.Time `gorm:"column:school_created_at;not null;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time `gorm:"column:school_updated_at;not null;autoUpdateTime" json:"school_updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
