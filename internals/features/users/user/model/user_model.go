// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel maps table `users`. Account lifecycle (registration, approval,
// token issuance) is owned by the auth service; this app only reads rows
// and seeds the bootstrap super admin.
type UserModel struct {
	ID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SchoolID uuid.UUID `json:"user_school_id" gorm:"column:user_school_id;type:uuid;not null;index:idx_users_school"`

	FullName string `json:"user_full_name" gorm:"column:user_full_name;type:varchar(120);not null"`
	Email    string `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex:uq_users_email"`
	Password string `json:"-" gorm:"column:user_password;type:varchar(100);not null"`

	// admin | teacher
	Role     string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;index:idx_users_role"`
	IsActive bool   `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	CreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"user_deleted_at" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }
