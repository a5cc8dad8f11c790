package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// ProductHandler serves the read-only package/upsell catalogue. The
// catalogue changes rarely, so list responses are cached in Redis.
type ProductHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewProductHandler(db *gorm.DB, rdb *redis.Client) *ProductHandler {
	return &ProductHandler{DB: db, RDB: rdb}
}

const productCacheTTL = 5 * time.Minute

func (h *ProductHandler) List(c *fiber.Ctx) error {
	ptype := c.Query("type")
	includeFeatures := c.QueryBool("includeFeatures", false)

	cacheKey := "cj:products:" + ptype
	if h.RDB != nil {
		if raw, err := h.RDB.Get(c.Context(), cacheKey).Result(); err == nil {
			var cached []models.Product
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return c.JSON(fiber.Map{"success": true, "data": stripFeatures(cached, includeFeatures)})
			}
		}
	}

	q := h.DB.Where("active = true").Order("credits ASC")
	if ptype != "" {
		q = q.Where("type = ?", ptype)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return fail500(c, "failed to load products")
	}

	if h.RDB != nil {
		if raw, err := json.Marshal(products); err == nil {
			h.RDB.Set(c.Context(), cacheKey, raw, productCacheTTL)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": stripFeatures(products, includeFeatures)})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	var p models.Product
	if err := h.DB.First(&p, "id = ? AND active = true", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "product not found",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

func stripFeatures(products []models.Product, includeFeatures bool) []models.Product {
	if includeFeatures {
		return products
	}
	out := make([]models.Product, len(products))
	copy(out, products)
	for i := range out {
		out[i].Features = nil
	}
	return out
}
