package models

import (
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinPending  JoinRequestStatus = "pending"  // verification mail sent
	JoinVerified JoinRequestStatus = "verified" // mail link clicked
	JoinJoined   JoinRequestStatus = "joined"   // user attached to the employer
)

// JoinRequest tracks the "join existing employer account" flow started when
// a KVK number turns out to be registered already.
type JoinRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	ContactName string `gorm:"type:varchar(150);not null" json:"contact_name"`
	ContactRole string `gorm:"type:varchar(120)" json:"contact_role"`
	Email       string `gorm:"type:varchar(150);not null" json:"email"`

	Token     uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	Status    JoinRequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
