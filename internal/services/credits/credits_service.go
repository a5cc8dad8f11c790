package credits

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// Service keeps Employer.CreditBalance and the credit ledger in sync. The
// balance column is only ever changed here, atomically; everything else just
// re-reads it.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Balance returns the employer's current credit balance.
func (s *Service) Balance(employerID uuid.UUID) (int64, error) {
	var e models.Employer
	if err := s.DB.Select("credit_balance").First(&e, "id = ?", employerID).Error; err != nil {
		return 0, err
	}
	return e.CreditBalance, nil
}

// Purchase adds bought (or invoiced) credits and creates a ledger entry.
// Must be called within a DB transaction.
func (s *Service) Purchase(tx *gorm.DB, employerID uuid.UUID, amount int64, referenceID uuid.UUID, description string) error {
	if amount <= 0 {
		return errors.New("amount to purchase must be greater than zero")
	}

	result := tx.Model(&models.Employer{}).
		Where("id = ?", employerID).
		Update("credit_balance", gorm.Expr("credit_balance + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("employer not found for id %s", employerID)
	}

	ledger := models.CreditTransaction{
		ID:          uuid.New(),
		EmployerID:  employerID,
		Amount:      amount,
		Type:        models.CreditTrxPurchase,
		Description: description,
		ReferenceID: &referenceID,
	}
	return tx.Create(&ledger).Error
}

// Debit spends credits on a submission and creates a ledger entry. Must be
// called within a DB transaction.
func (s *Service) Debit(tx *gorm.DB, employerID uuid.UUID, amount int64, referenceID uuid.UUID, description string) error {
	if amount <= 0 {
		return errors.New("amount to debit must be greater than zero")
	}

	var e models.Employer
	if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&e, "id = ?", employerID).Error; err != nil {
		return err
	}
	if e.CreditBalance < amount {
		return errors.New("insufficient credits")
	}

	result := tx.Model(&models.Employer{}).
		Where("id = ? AND credit_balance >= ?", employerID, amount).
		Update("credit_balance", gorm.Expr("credit_balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("failed to deduct credits: employer not found or insufficient credits")
	}

	ledger := models.CreditTransaction{
		ID:          uuid.New(),
		EmployerID:  employerID,
		Amount:      amount,
		Type:        models.CreditTrxDebit,
		Description: description,
		ReferenceID: &referenceID,
	}
	return tx.Create(&ledger).Error
}

// Refund returns credits (unpublished vacancy, rejected posting) and creates
// a ledger entry. Must be called within a DB transaction.
func (s *Service) Refund(tx *gorm.DB, employerID uuid.UUID, amount int64, referenceID uuid.UUID, description string) error {
	if amount <= 0 {
		return errors.New("amount to refund must be greater than zero")
	}

	result := tx.Model(&models.Employer{}).
		Where("id = ?", employerID).
		Update("credit_balance", gorm.Expr("credit_balance + ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("employer not found for id %s", employerID)
	}

	ledger := models.CreditTransaction{
		ID:          uuid.New(),
		EmployerID:  employerID,
		Amount:      amount,
		Type:        models.CreditTrxRefund,
		Description: description,
		ReferenceID: &referenceID,
	}
	return tx.Create(&ledger).Error
}
