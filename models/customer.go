package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"not null" json:"full_name"`
	Email    string    `gorm:"index" json:"email,omitempty"`
	Phone    string    `gorm:"not null" json:"phone"`
	Address  string    `json:"address,omitempty"`

	// Owning technician. When set, only that technician (or an admin) may
	// read or mutate this record.
	CreatedByTechnician *uuid.UUID `gorm:"type:uuid;index" json:"created_by_technician,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
