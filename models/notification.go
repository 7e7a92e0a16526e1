package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types surfaced to admins.
const (
	NotifNewRepair           = "new_repair"
	NotifNewCustomer         = "new_customer"
	NotifRepairStatusUpdate  = "repair_status_update"
	NotifRepairCancelled     = "repair_cancelled"
	NotifAccountApproved     = "account_approved"
	NotifNewUserRegistration = "new_user_registration"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type    string    `gorm:"type:varchar(40);not null;index" json:"type"`
	Title   string    `gorm:"not null" json:"title"`
	Message string    `gorm:"type:text" json:"message"`

	// Related entity, denormalized for UI linking.
	RelatedID    *uuid.UUID `gorm:"type:uuid;index" json:"related_id,omitempty"`
	RepairID     *uuid.UUID `gorm:"type:uuid;index" json:"repair_id,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	DeviceInfo   string     `json:"device_info,omitempty"`
	NewStatus    string     `json:"new_status,omitempty"`

	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
