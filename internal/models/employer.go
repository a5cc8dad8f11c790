package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OnboardingStatus string

const (
	StatusDraft         OnboardingStatus = "draft"
	StatusPendingReview OnboardingStatus = "pending_review"
	StatusApproved      OnboardingStatus = "approved"
	StatusRejected      OnboardingStatus = "rejected"
)

type Employer struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	// Step tracking
	OnboardingStep   int              `gorm:"not null;default:1" json:"onboarding_step"` // 1..4
	OnboardingStatus OnboardingStatus `gorm:"type:varchar(30);not null;default:'draft'" json:"onboarding_status"`

	// Step 1 - contact person
	ContactFirstName string `gorm:"type:varchar(80)" json:"contact_first_name"`
	ContactLastName  string `gorm:"type:varchar(80)" json:"contact_last_name"`
	ContactJobTitle  string `gorm:"type:varchar(120)" json:"contact_job_title"`
	ContactEmail     string `gorm:"type:varchar(150)" json:"contact_email"` // mirrors the users table
	ContactPhone     string `gorm:"type:varchar(30)" json:"contact_phone"`

	// Step 2 - company (picked via KVK lookup)
	CompanyName string `gorm:"type:varchar(150)" json:"company_name"`
	KVKNumber   string `gorm:"type:varchar(8);uniqueIndex" json:"kvk_number"`
	LegalForm   string `gorm:"type:varchar(80)" json:"legal_form"`
	Domain      string `gorm:"type:varchar(150)" json:"domain"` // e-mail domain used by the join flow
	Street      string `gorm:"type:varchar(150)" json:"street"`
	City        string `gorm:"type:varchar(120)" json:"city"`

	// Step 3 - billing
	BillingStreet     string `gorm:"type:varchar(150)" json:"billing_street"`
	BillingPostalCode string `gorm:"type:varchar(10)" json:"billing_postal_code"` // NNNN AA
	BillingCity       string `gorm:"type:varchar(120)" json:"billing_city"`
	InvoiceEmail      string `gorm:"type:varchar(150)" json:"invoice_email"`
	InvoiceReference  string `gorm:"type:varchar(80)" json:"invoice_reference"`

	// Step 4 - branding (logo media id, colors, intro text)
	Branding datatypes.JSON `json:"branding"`

	ProfileComplete bool `gorm:"default:false" json:"profile_complete"`

	// Available posting credits, kept in sync with the ledger.
	CreditBalance int64 `gorm:"not null;default:0" json:"credit_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceDetailsComplete reports whether the billing fields needed to invoice
// a credit shortfall are all populated.
func (e *Employer) InvoiceDetailsComplete() bool {
	return e.BillingStreet != "" &&
		e.BillingPostalCode != "" &&
		e.BillingCity != "" &&
		e.InvoiceEmail != ""
}
