package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
	"github.com/colourful-jobs/platform-backend/internal/services/kvk"
	"github.com/colourful-jobs/platform-backend/internal/services/mail"
	"github.com/colourful-jobs/platform-backend/internal/utils"
	"github.com/colourful-jobs/platform-backend/internal/wizard"
)

// KVKHandler proxies the business-registry search and runs the
// join-existing-account flow started when a searched company turns out to
// be registered on the platform already.
type KVKHandler struct {
	DB              *gorm.DB
	KVK             *kvk.Service
	Mailer          mail.Mailer
	FrontendBaseURL string
	JWTSecret       string
	Expires         int
}

func NewKVKHandler(db *gorm.DB, svc *kvk.Service, mailer mail.Mailer, frontendBaseURL, jwtSecret string, expires int) *KVKHandler {
	return &KVKHandler{DB: db, KVK: svc, Mailer: mailer, FrontendBaseURL: frontendBaseURL, JWTSecret: jwtSecret, Expires: expires}
}

func (h *KVKHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/kvk", authMiddleware...)
	g.Get("/search", h.Search)

	j := r.Group("/employers", authMiddleware...)
	j.Post("/:id/join", h.Join)
	j.Post("/join/verify", h.Verify)
}

type searchHit struct {
	kvk.Company
	AlreadyRegistered bool       `json:"already_registered"`
	EmployerID        *uuid.UUID `json:"employer_id,omitempty"`
}

// Search returns registry hits annotated with whether the KVK number is
// already tied to a platform account, so the client can offer the join flow
// right in the picker.
func (h *KVKHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fail200(c, "q is required")
	}

	results, err := h.KVK.Search(c.Context(), query)
	if err != nil {
		return fail200(c, "company search is unavailable, try again")
	}

	numbers := make([]string, 0, len(results))
	for _, r := range results {
		numbers = append(numbers, r.KVKNumber)
	}

	registered := map[string]uuid.UUID{}
	if len(numbers) > 0 {
		var employers []models.Employer
		if err := h.DB.Select("id", "kvk_number").Where("kvk_number IN ?", numbers).Find(&employers).Error; err == nil {
			for _, e := range employers {
				registered[e.KVKNumber] = e.ID
			}
		}
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hit := searchHit{Company: r}
		if id, ok := registered[r.KVKNumber]; ok {
			hit.AlreadyRegistered = true
			eid := id
			hit.EmployerID = &eid
		}
		hits = append(hits, hit)
	}

	return c.JSON(fiber.Map{"success": true, "data": hits})
}

type joinReq struct {
	ContactName string `json:"contact_name"`
	ContactRole string `json:"contact_role"`
	Email       string `json:"email"`
}

// Join asks to become a member of an existing employer account. The e-mail
// must belong to the employer's domain; if it equals the session user's
// verified address the join happens immediately, otherwise a verification
// mail round-trip is required.
func (h *KVKHandler) Join(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	employerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail200(c, "invalid employer id")
	}

	var req joinReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.ContactName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return fail200(c, "contact_name is required")
	}
	if !wizard.ValidEmail(email) {
		return fail200(c, "enter a valid e-mail address")
	}

	var target models.Employer
	if err := h.DB.First(&target, "id = ?", employerID).Error; err != nil {
		return fail200(c, "employer not found")
	}
	if target.Domain == "" || !kvk.EmailDomainMatches(email, target.Domain) {
		return fail200(c, "e-mail must use the company domain @"+target.Domain, fiber.Map{
			"domain_mismatch": true,
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", userID).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	if u.EmployerID != nil {
		return fail200(c, "you already belong to an employer account")
	}

	// verified session e-mail on the company domain: no mail round-trip
	if u.EmailVerified && strings.EqualFold(u.Email, email) {
		tx := h.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		u.EmployerID = &target.ID
		u.UpdatedAt = time.Now()
		if err := tx.Save(&u).Error; err != nil {
			tx.Rollback()
			return fail500(c, "failed to join employer")
		}

		jr := models.JoinRequest{
			EmployerID:  target.ID,
			UserID:      u.ID,
			ContactName: name,
			ContactRole: strings.TrimSpace(req.ContactRole),
			Email:       email,
			Token:       uuid.New(),
			Status:      models.JoinJoined,
			ExpiresAt:   time.Now(),
		}
		if err := tx.Create(&jr).Error; err != nil {
			tx.Rollback()
			return fail500(c, "failed to record join")
		}
		if err := tx.Commit().Error; err != nil {
			return fail500(c, "failed to commit")
		}

		// fresh token so the session carries the employer membership
		token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
		if err != nil {
			return fail500(c, "failed to issue new token")
		}
		c.Cookie(&fiber.Cookie{
			Name:     "cj_token",
			Value:    token,
			Path:     "/",
			HTTPOnly: true,
			Secure:   false,
			SameSite: "Lax",
			MaxAge:   h.Expires * 60,
		})

		return c.JSON(fiber.Map{
			"success": true,
			"message": "joined " + target.CompanyName,
			"data":    fiber.Map{"joined": true, "employer_id": target.ID},
		})
	}

	jr := models.JoinRequest{
		EmployerID:  target.ID,
		UserID:      u.ID,
		ContactName: name,
		ContactRole: strings.TrimSpace(req.ContactRole),
		Email:       email,
		Token:       uuid.New(),
		Status:      models.JoinPending,
		ExpiresAt:   time.Now().Add(48 * time.Hour),
	}
	if err := h.DB.Create(&jr).Error; err != nil {
		return fail500(c, "failed to create join request")
	}

	link := mail.JoinVerificationLink(h.FrontendBaseURL, jr.Token)
	if err := h.Mailer.SendJoinVerification(email, target.CompanyName, link); err != nil {
		return fail500(c, "failed to send verification e-mail")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification e-mail sent to " + email,
		"data":    fiber.Map{"joined": false, "pending": true},
	})
}

type verifyReq struct {
	Token string `json:"token"`
}

// Verify consumes the token from the verification mail and completes the
// membership.
func (h *KVKHandler) Verify(c *fiber.Ctx) error {
	var req verifyReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	token, err := uuid.Parse(strings.TrimSpace(req.Token))
	if err != nil {
		return fail200(c, "invalid token")
	}

	var jr models.JoinRequest
	err = h.DB.First(&jr, "token = ? AND status = ?", token, models.JoinPending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail200(c, "token is unknown or already used")
	}
	if err != nil {
		return fail500(c, "failed to load join request")
	}
	if time.Now().After(jr.ExpiresAt) {
		return fail200(c, "token has expired, request a new invitation")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var u models.User
	if err := tx.First(&u, "id = ?", jr.UserID).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to load user")
	}
	if u.EmployerID == nil {
		u.EmployerID = &jr.EmployerID
	}
	u.EmailVerified = true
	u.UpdatedAt = time.Now()
	if err := tx.Save(&u).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to join employer")
	}

	jr.Status = models.JoinJoined
	jr.UpdatedAt = time.Now()
	if err := tx.Save(&jr).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update join request")
	}
	if err := tx.Commit().Error; err != nil {
		return fail500(c, "failed to commit")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "membership verified",
		"data":    fiber.Map{"joined": true, "employer_id": jr.EmployerID},
	})
}
