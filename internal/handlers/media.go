package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// MediaHandler stores employer uploads (logos, header images) on disk and
// records them so wizard drafts can reference them by id.
type MediaHandler struct {
	DB            *gorm.DB
	UploadDir     string
	PublicBaseURL string
}

func NewMediaHandler(db *gorm.DB, uploadDir, publicBaseURL string) *MediaHandler {
	return &MediaHandler{DB: db, UploadDir: uploadDir, PublicBaseURL: publicBaseURL}
}

func (h *MediaHandler) Routes(r fiber.Router, authMiddleware ...fiber.Handler) {
	g := r.Group("/media", authMiddleware...)
	g.Get("/", h.List)
	g.Post("/", h.Upload)
}

// Upload accepts multipart field "file" plus an optional "kind" field.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		if err == ErrNoEmployer {
			return fail200(c, "complete onboarding before uploading media")
		}
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return fail200(c, "file is required (multipart field: file)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" && ext != ".svg" {
		return fail200(c, "file must be jpg/jpeg/png/webp/svg")
	}
	if file.Size > 5*1024*1024 {
		return fail200(c, "file max size is 5MB")
	}

	kind := strings.TrimSpace(c.FormValue("kind", "photo"))

	dir := filepath.Join(h.UploadDir, "employers", e.ID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create upload dir")
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(dir, filename)
	if err := c.SaveFile(file, dst); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save file")
	}

	base := strings.TrimRight(h.PublicBaseURL, "/")
	publicURL := fmt.Sprintf("%s/uploads/employers/%s/%s", base, e.ID.String(), filename)
	if base == "" {
		publicURL = fmt.Sprintf("/uploads/employers/%s/%s", e.ID.String(), filename)
	}

	m := models.Media{
		EmployerID: e.ID,
		Kind:       kind,
		FileName:   filename,
		URL:        publicURL,
		Size:       file.Size,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return fail500(c, "failed to store media record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "uploaded",
		"data":    m,
	})
}

func (h *MediaHandler) List(c *fiber.Ctx) error {
	_, e, err := getEmployerUser(h.DB, c)
	if err != nil {
		if err == ErrNoEmployer {
			return c.JSON(fiber.Map{"success": true, "data": []models.Media{}})
		}
		return err
	}

	var media []models.Media
	if err := h.DB.Where("employer_id = ?", e.ID).Order("created_at DESC").Find(&media).Error; err != nil {
		return fail500(c, "failed to load media")
	}
	return c.JSON(fiber.Map{"success": true, "data": media})
}
