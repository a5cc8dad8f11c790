package models

// Lookup rows back the reference dropdowns of the vacancy form
// (employment types, education levels, sectors, regions).
type Lookup struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Type  string `gorm:"type:varchar(50);not null;index" json:"type"`
	Key   string `gorm:"type:varchar(80);not null" json:"key"`
	Label string `gorm:"type:varchar(150);not null" json:"label"`
	Sort  int    `json:"sort"`
}
