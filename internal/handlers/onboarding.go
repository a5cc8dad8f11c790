package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

// OnboardingHandler drives the employer onboarding wizard:
// step 1 personal details, step 2 company via KVK lookup, step 3 billing,
// step 4 branding, then an explicit submit.
type OnboardingHandler struct {
	DB *gorm.DB
}

func NewOnboardingHandler(db *gorm.DB) *OnboardingHandler {
	return &OnboardingHandler{DB: db}
}

func (h *OnboardingHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/onboarding", authMiddleware...)
	g.Get("/", h.Get)
	g.Patch("/personal", h.UpdatePersonal)
	g.Patch("/company", h.UpdateCompany)
	g.Patch("/billing", h.UpdateBilling)
	g.Patch("/branding", h.UpdateBranding)
	g.Post("/submit", h.Submit)
}

func (h *OnboardingHandler) getUserEmail(tx *gorm.DB, userID uuid.UUID) (string, error) {
	var u models.User
	if err := tx.Select("email", "is_active").First(&u, "id = ?", userID).Error; err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", fiber.NewError(fiber.StatusForbidden, "user is inactive")
	}
	return strings.ToLower(strings.TrimSpace(u.Email)), nil
}

// findOrCreateEmployer loads the user's employer account, creating an empty
// draft one on first touch and attaching it to the user.
func (h *OnboardingHandler) findOrCreateEmployer(tx *gorm.DB, userID uuid.UUID) (*models.Employer, error) {
	var u models.User
	if err := tx.First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	email, errEmail := h.getUserEmail(tx, userID)
	if errEmail != nil {
		return nil, errEmail
	}

	if u.EmployerID != nil {
		var e models.Employer
		if err := tx.First(&e, "id = ?", *u.EmployerID).Error; err != nil {
			return nil, err
		}
		// keep contact_email consistent with the users table
		if e.ContactEmail == "" {
			e.ContactEmail = email
			if err := tx.Save(&e).Error; err != nil {
				return nil, err
			}
		}
		return &e, nil
	}

	e := models.Employer{
		OnboardingStep:   1,
		OnboardingStatus: models.StatusDraft,
		ContactEmail:     email,
	}
	if err := tx.Create(&e).Error; err != nil {
		return nil, err
	}

	u.EmployerID = &e.ID
	u.UpdatedAt = time.Now()
	if err := tx.Save(&u).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (h *OnboardingHandler) Get(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	e, err := h.findOrCreateEmployer(h.DB, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load employer")
	}

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Step 1: contact person
type updatePersonalReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	JobTitle  string `json:"job_title"`
	Phone     string `json:"phone"`
}

func (h *OnboardingHandler) UpdatePersonal(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updatePersonalReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	fn := strings.TrimSpace(req.FirstName)
	ln := strings.TrimSpace(req.LastName)
	title := strings.TrimSpace(req.JobTitle)
	phone := normalizePhone(req.Phone)

	if fn == "" || ln == "" {
		return fail200(c, "first_name and last_name are required")
	}
	if phone != "" && len(phone) < 9 {
		return fail200(c, "phone number is too short")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	e, err := h.findOrCreateEmployer(tx, userID)
	if err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load employer")
	}
	if e.OnboardingStatus != models.StatusDraft {
		tx.Rollback()
		return fail200(c, "onboarding already submitted")
	}

	e.ContactFirstName = fn
	e.ContactLastName = ln
	e.ContactJobTitle = title
	e.ContactPhone = phone
	e.OnboardingStep = int(wizard.Bump(wizard.Step(e.OnboardingStep), 1))
	e.UpdatedAt = time.Now()

	if err := tx.Save(e).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update")
	}
	tx.Commit()

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Step 2: company picked from the KVK lookup
type updateCompanyReq struct {
	CompanyName string `json:"company_name"`
	KVKNumber   string `json:"kvk_number"`
	LegalForm   string `json:"legal_form"`
	Domain      string `json:"domain"`
	Street      string `json:"street"`
	City        string `json:"city"`
}

func (h *OnboardingHandler) UpdateCompany(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updateCompanyReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	name := strings.TrimSpace(req.CompanyName)
	kvk := strings.TrimSpace(req.KVKNumber)
	domain := strings.ToLower(strings.TrimSpace(req.Domain))

	if name == "" {
		return fail200(c, "company_name is required")
	}
	if !isDigitsLen(kvk, 8) {
		return fail200(c, "kvk_number must be 8 digits")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	e, err := h.findOrCreateEmployer(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load employer")
	}
	if e.ContactFirstName == "" || e.ContactLastName == "" {
		tx.Rollback()
		return fail200(c, "complete step 1 (personal details) first")
	}
	if e.OnboardingStatus != models.StatusDraft {
		tx.Rollback()
		return fail200(c, "onboarding already submitted")
	}

	// the KVK number may already belong to another account: offer the
	// join-existing-account flow instead of failing opaquely
	var other models.Employer
	err = tx.Where("kvk_number = ? AND id <> ?", kvk, e.ID).First(&other).Error
	if err == nil {
		tx.Rollback()
		return fail200(c, "this company is already registered", fiber.Map{
			"duplicate_kvk": true,
			"employer": fiber.Map{
				"id":           other.ID,
				"company_name": other.CompanyName,
			},
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return fail500(c, "failed to validate kvk number")
	}

	e.CompanyName = name
	e.KVKNumber = kvk
	e.LegalForm = strings.TrimSpace(req.LegalForm)
	e.Domain = domain
	e.Street = strings.TrimSpace(req.Street)
	e.City = strings.TrimSpace(req.City)
	e.OnboardingStep = int(wizard.Bump(wizard.Step(e.OnboardingStep), 2))
	e.UpdatedAt = time.Now()

	if err := tx.Save(e).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return fail200(c, "this company is already registered", fiber.Map{"duplicate_kvk": true})
		}
		return fail500(c, "failed to update")
	}
	tx.Commit()

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Step 3: billing
type updateBillingReq struct {
	Street           string `json:"street"`
	PostalCode       string `json:"postal_code"`
	City             string `json:"city"`
	InvoiceEmail     string `json:"invoice_email"`
	InvoiceReference string `json:"invoice_reference"`
}

func (h *OnboardingHandler) UpdateBilling(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updateBillingReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	street := strings.TrimSpace(req.Street)
	postal := strings.ToUpper(strings.TrimSpace(req.PostalCode))
	city := strings.TrimSpace(req.City)
	invoiceEmail := strings.ToLower(strings.TrimSpace(req.InvoiceEmail))

	if street == "" || city == "" {
		return fail200(c, "street and city are required")
	}
	if !validPostalCode(postal) {
		return fail200(c, "postal_code must look like 1234 AB")
	}
	if invoiceEmail == "" || !wizard.ValidEmail(invoiceEmail) {
		return fail200(c, "invoice_email must be a valid e-mail address")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	e, err := h.findOrCreateEmployer(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load employer")
	}
	if e.KVKNumber == "" {
		tx.Rollback()
		return fail200(c, "complete step 2 (company) first")
	}
	if e.OnboardingStatus != models.StatusDraft {
		tx.Rollback()
		return fail200(c, "onboarding already submitted")
	}

	e.BillingStreet = street
	e.BillingPostalCode = postal
	e.BillingCity = city
	e.InvoiceEmail = invoiceEmail
	e.InvoiceReference = strings.TrimSpace(req.InvoiceReference)
	e.OnboardingStep = int(wizard.Bump(wizard.Step(e.OnboardingStep), 3))
	e.UpdatedAt = time.Now()

	if err := tx.Save(e).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update")
	}
	tx.Commit()

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Step 4: branding
type updateBrandingReq struct {
	LogoMediaID string `json:"logo_media_id"`
	Color       string `json:"color"`
	Intro       string `json:"intro"`
}

func (h *OnboardingHandler) UpdateBranding(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req updateBrandingReq
	if err := c.BodyParser(&req); err != nil {
		return fail200(c, "invalid body")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	e, err := h.findOrCreateEmployer(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load employer")
	}
	if e.BillingPostalCode == "" {
		tx.Rollback()
		return fail200(c, "complete step 3 (billing) first")
	}
	if e.OnboardingStatus != models.StatusDraft {
		tx.Rollback()
		return fail200(c, "onboarding already submitted")
	}

	if req.LogoMediaID != "" {
		mediaID, err := uuid.Parse(req.LogoMediaID)
		if err != nil {
			tx.Rollback()
			return fail200(c, "logo_media_id is not a valid id")
		}
		var m models.Media
		if err := tx.First(&m, "id = ? AND employer_id = ?", mediaID, e.ID).Error; err != nil {
			tx.Rollback()
			return fail200(c, "logo media not found")
		}
	}

	branding, err := json.Marshal(fiber.Map{
		"logo_media_id": strings.TrimSpace(req.LogoMediaID),
		"color":         strings.TrimSpace(req.Color),
		"intro":         strings.TrimSpace(req.Intro),
	})
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to process branding")
	}

	e.Branding = datatypes.JSON(branding)
	e.OnboardingStep = int(wizard.Bump(wizard.Step(e.OnboardingStep), 4))
	e.UpdatedAt = time.Now()

	if err := tx.Save(e).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update")
	}
	tx.Commit()

	return c.JSON(fiber.Map{"success": true, "data": e})
}

// Final submit: every step must be filled in; branding is the only optional
// one (a logo can be added later).
func (h *OnboardingHandler) Submit(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	e, err := h.findOrCreateEmployer(tx, userID)
	if err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load employer")
	}
	if e.OnboardingStatus != models.StatusDraft {
		tx.Rollback()
		return fail200(c, "already submitted")
	}

	missing := []string{}
	if e.ContactFirstName == "" {
		missing = append(missing, "first_name")
	}
	if e.ContactLastName == "" {
		missing = append(missing, "last_name")
	}
	if e.ContactEmail == "" {
		missing = append(missing, "contact_email")
	}
	if e.CompanyName == "" {
		missing = append(missing, "company_name")
	}
	if !isDigitsLen(e.KVKNumber, 8) {
		missing = append(missing, "kvk_number")
	}
	if e.BillingStreet == "" {
		missing = append(missing, "billing_street")
	}
	if !validPostalCode(e.BillingPostalCode) {
		missing = append(missing, "billing_postal_code")
	}
	if e.BillingCity == "" {
		missing = append(missing, "billing_city")
	}
	if e.InvoiceEmail == "" {
		missing = append(missing, "invoice_email")
	}

	if len(missing) > 0 {
		tx.Rollback()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": false,
			"message": "profile is incomplete",
			"missing": missing,
		})
	}

	e.OnboardingStatus = models.StatusApproved
	e.OnboardingStep = 4
	e.ProfileComplete = true
	e.UpdatedAt = time.Now()

	if err := tx.Save(e).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to submit")
	}
	if err := tx.Commit().Error; err != nil {
		return fail500(c, "failed to commit")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "onboarding complete",
		"data":    e,
	})
}
