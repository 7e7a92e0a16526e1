package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values travel on the wire, keep them stable.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "teknisyen"
	RoleCustomer   = "musteri"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	FullName string    `gorm:"not null" json:"full_name"`
	Phone    string    `json:"phone"`

	Role string `gorm:"type:varchar(20);not null" json:"role"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsTechnician() bool { return u.Role == RoleTechnician }
func (u *User) IsCustomer() bool   { return u.Role == RoleCustomer }
