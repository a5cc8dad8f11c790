package models

import (
	"time"

	"github.com/google/uuid"
)

type Media struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`

	Kind     string `gorm:"type:varchar(30)" json:"kind"` // logo | header | photo
	FileName string `gorm:"type:varchar(200)" json:"file_name"`
	URL      string `gorm:"type:text" json:"url"`
	Size     int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
}
