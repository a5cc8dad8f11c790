package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
	"github.com/colourful-jobs/platform-backend/internal/services/credits"
)

// AccountHandler returns the signed-in user plus their employer account:
// profile completeness, billing details and the credit balance the wizard's
// sidebar reads.
type AccountHandler struct {
	DB      *gorm.DB
	Credits *credits.Service
}

func NewAccountHandler(db *gorm.DB, creditsSvc *credits.Service) *AccountHandler {
	return &AccountHandler{DB: db, Credits: creditsSvc}
}

func (h *AccountHandler) Get(c *fiber.Ctx) error {
	u, e, err := getEmployerUser(h.DB, c)
	if err != nil && err != ErrNoEmployer {
		return err
	}

	data := fiber.Map{
		"user": fiber.Map{
			"id":             u.ID,
			"name":           u.Name,
			"email":          u.Email,
			"role":           u.Role,
			"email_verified": u.EmailVerified,
		},
		"profile_complete": false,
	}

	if e != nil {
		balance, err := h.Credits.Balance(e.ID)
		if err != nil {
			return fail500(c, "failed to load credit balance")
		}
		data["employer"] = e
		data["profile_complete"] = e.ProfileComplete
		data["billing"] = fiber.Map{
			"street":            e.BillingStreet,
			"postal_code":       e.BillingPostalCode,
			"city":              e.BillingCity,
			"invoice_email":     e.InvoiceEmail,
			"invoice_reference": e.InvoiceReference,
			"complete":          e.InvoiceDetailsComplete(),
		}
		data["credits"] = balance
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

// ListCreditTransactions exposes the ledger so employers can audit their
// credit spend.
func (h *AccountHandler) ListCreditTransactions(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		if err == ErrNoEmployer {
			return c.JSON(fiber.Map{"success": true, "data": []models.CreditTransaction{}})
		}
		return err
	}

	var trx []models.CreditTransaction
	if err := h.DB.Where("employer_id = ?", e.ID).Order("created_at DESC").Limit(100).Find(&trx).Error; err != nil {
		return fail500(c, "failed to load transactions")
	}
	return c.JSON(fiber.Map{"success": true, "data": trx})
}
