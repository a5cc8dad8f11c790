package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VacancyStatus string

const (
	VacancyDraft            VacancyStatus = "draft"
	VacancyAwaitingApproval VacancyStatus = "awaiting_approval"
	VacancyPublished        VacancyStatus = "published"
	VacancyExpired          VacancyStatus = "expired"
	VacancyUnpublished      VacancyStatus = "unpublished"
)

// ReadOnly reports whether the wizard may still mutate this vacancy.
// Anything past draft is under review or live and only changes through
// external state (approval, expiry), never through wizard actions.
func (s VacancyStatus) ReadOnly() bool {
	return s != VacancyDraft
}

type Vacancy struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer   *Employer `gorm:"foreignKey:EmployerID;references:ID" json:"-"`

	Status    VacancyStatus `gorm:"type:varchar(30);not null;default:'draft'" json:"status"`
	InputType string        `gorm:"type:varchar(30);not null;default:'self_service'" json:"input_type"`

	// Wizard bookkeeping
	CurrentStep int `gorm:"not null;default:1" json:"current_step"` // 1..4

	// Step 1 - package selection
	ProductID *uuid.UUID     `gorm:"type:uuid" json:"product_id,omitempty"`
	UpsellIDs datatypes.JSON `json:"upsell_ids"` // JSON array of product ids, set semantics

	// Step 2 - content
	Title          string         `gorm:"type:varchar(200)" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Location       string         `gorm:"type:varchar(150)" json:"location"`
	EmploymentType string         `gorm:"type:varchar(50)" json:"employment_type"`
	EducationLevel string         `gorm:"type:varchar(50)" json:"education_level"`
	SalaryMin      int            `json:"salary_min"`
	SalaryMax      int            `json:"salary_max"`
	ContactName    string         `gorm:"type:varchar(150)" json:"contact_name"`
	ContactEmail   string         `gorm:"type:varchar(150)" json:"contact_email"`
	ContactPhone   string         `gorm:"type:varchar(30)" json:"contact_phone"`
	Extras         datatypes.JSON `json:"extras"` // free-form per-product extras (media ids, video url)

	// Serialized form of the last persisted draft; the auto-save dedup anchor.
	LastSnapshot string `gorm:"type:text" json:"-"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
