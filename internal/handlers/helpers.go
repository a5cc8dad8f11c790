package handlers

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// ========= Helpers =========

// Business rejections go out as 200 with success:false so the client can
// render them inline instead of tripping generic error handling.
func fail200(c *fiber.Ctx, message string, extra ...fiber.Map) error {
	resp := fiber.Map{
		"success": false,
		"message": message,
	}
	if len(extra) > 0 {
		for k, v := range extra[0] {
			resp[k] = v
		}
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func fail500(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	uID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return uID, nil
}

// getEmployerUser loads the authenticated user plus the employer account it
// belongs to. Users without an employer yet get ErrNoEmployer.
var ErrNoEmployer = errors.New("user has no employer account")

func getEmployerUser(db *gorm.DB, c *fiber.Ctx) (*models.User, *models.Employer, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, nil, err
	}

	var u models.User
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	if !u.IsActive {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, "user is inactive")
	}
	if u.EmployerID == nil {
		return &u, nil, ErrNoEmployer
	}

	var e models.Employer
	if err := db.First(&e, "id = ?", *u.EmployerID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load employer")
	}
	return &u, &e, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// postgres unique violation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint")
}

func isDigitsLen(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

// Dutch postcode: 4 digits, optional space, 2 letters.
var postalRe = regexp.MustCompile(`^\d{4}\s?[A-Za-z]{2}$`)

func validPostalCode(s string) bool {
	return postalRe.MatchString(strings.TrimSpace(s))
}
