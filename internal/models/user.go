package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone string    `gorm:"type:varchar(30)" json:"phone"`

	Password      string `gorm:"not null" json:"-"`
	Role          Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`

	// Set once the user belongs to an employer account (own signup or join flow).
	EmployerID *uuid.UUID `gorm:"type:uuid;index" json:"employer_id,omitempty"`
	Employer   *Employer  `gorm:"foreignKey:EmployerID;references:ID" json:"employer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
