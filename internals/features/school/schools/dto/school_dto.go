package dto

import (
	"time"

	"github.com/google/uuid"

	m "schooldesk_backend/internals/features/school/schools/model"
)

type RegisterAdminRequest struct {
	SchoolName string `json:"school_name" validate:"required,min=1,max=120"`
	AdminName  string `json:"admin_name" validate:"required,min=1,max=120"`
	AdminEmail string `json:"admin_email" validate:"required,email,max=120"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

type LoginAdminRequest struct {
	AdminEmail string `json:"admin_email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
}

type SchoolResponse struct {
	SchoolID         uuid.UUID `json:"school_id"`
	SchoolName       string    `json:"school_name"`
	SchoolAdminName  string    `json:"school_admin_name"`
	SchoolAdminEmail string    `json:"school_admin_email"`
	SchoolCreatedAt  time.Time `json:"school_created_at"`
	SchoolUpdatedAt  time.Time `json:"school_updated_at"`
}

func FromSchoolModel(mo m.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:         mo.SchoolID,
		SchoolName:       mo.SchoolName,
		SchoolAdminName:  mo.SchoolAdminName,
		SchoolAdminEmail: mo.SchoolAdminEmail,
		SchoolCreatedAt:  mo.SchoolCreatedAt,
		SchoolUpdatedAt:  mo.SchoolUpdatedAt,
	}
}

// LoginResponse is shared by all three roles: the bearer token plus the
// role the token carries.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Data  any    `json:"data"`
}
