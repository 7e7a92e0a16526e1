package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Category string    `gorm:"default:'Genel'" json:"category"`

	Quantity    int    `gorm:"default:0" json:"quantity"`
	Unit        string `gorm:"default:'adet'" json:"unit"`
	MinQuantity int    `gorm:"default:0" json:"min_quantity"`

	Supplier string  `json:"supplier,omitempty"`
	Price    float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
