package models

import (
	"time"

	"github.com/google/uuid"
)

type CreditTrxType string

const (
	CreditTrxPurchase CreditTrxType = "purchase" // credits bought or invoiced
	CreditTrxDebit    CreditTrxType = "debit"    // spent on a vacancy submit
	CreditTrxRefund   CreditTrxType = "refund"
)

// CreditTransaction is the ledger backing Employer.CreditBalance.
type CreditTransaction struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployerID  uuid.UUID     `gorm:"type:uuid;index;not null" json:"employer_id"`
	Amount      int64         `gorm:"not null" json:"amount"`
	Type        CreditTrxType `gorm:"type:varchar(20);not null" json:"type"`
	Description string        `gorm:"type:text" json:"description"`
	ReferenceID *uuid.UUID    `gorm:"type:uuid;index" json:"reference_id,omitempty"` // vacancy or invoice id
	CreatedAt   time.Time     `json:"created_at"`

	Employer *Employer `gorm:"foreignKey:EmployerID" json:"-"`
}
