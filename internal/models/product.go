package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProductType string

const (
	ProductPackage ProductType = "package"
	ProductUpsell  ProductType = "upsell"
)

// Product is read-only reference data: a posting package or an optional
// upsell, priced in credits plus a money price for purchasing credits.
type Product struct {
	ID   uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type ProductType `gorm:"type:varchar(20);not null;index" json:"type"`

	Name        string `gorm:"type:varchar(120);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Credits     int    `gorm:"not null" json:"credits"`
	Price       int64  `gorm:"not null" json:"price"` // in euro cents

	// Upsell ids already covered by this package (packages only).
	IncludedUpsells datatypes.JSON `json:"included_upsells"`

	// Marketing feature list shown on the package selector.
	Features datatypes.JSON `json:"populatedFeatures"`

	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
