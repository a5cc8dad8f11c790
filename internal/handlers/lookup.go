package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/colourful-jobs/platform-backend/internal/models"
)

// LookupHandler serves the reference data behind the vacancy form dropdowns.
type LookupHandler struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewLookupHandler(db *gorm.DB, rdb *redis.Client) *LookupHandler {
	return &LookupHandler{DB: db, RDB: rdb}
}

const lookupCacheTTL = 30 * time.Minute

func (h *LookupHandler) List(c *fiber.Ctx) error {
	ltype := c.Query("type", "all")

	cacheKey := "cj:lookups:" + ltype
	if h.RDB != nil {
		if raw, err := h.RDB.Get(c.Context(), cacheKey).Result(); err == nil {
			var cached map[string][]models.Lookup
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return c.JSON(fiber.Map{"success": true, "data": cached})
			}
		}
	}

	q := h.DB.Order("type, sort, label")
	if ltype != "all" {
		q = q.Where("type = ?", ltype)
	}

	var rows []models.Lookup
	if err := q.Find(&rows).Error; err != nil {
		return fail500(c, "failed to load lookups")
	}

	grouped := map[string][]models.Lookup{}
	for _, r := range rows {
		grouped[r.Type] = append(grouped[r.Type], r)
	}

	if h.RDB != nil {
		if raw, err := json.Marshal(grouped); err == nil {
			h.RDB.Set(c.Context(), cacheKey, raw, lookupCacheTTL)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": grouped})
}
