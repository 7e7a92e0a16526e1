package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repair statuses. The transition model is deliberately permissive: any
// authorized actor may set any status. All writes funnel through
// services.RepairLifecycle so a stricter table can be substituted later.
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRejected   = "rejected"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Priorities keep the original Turkish wire values.
const (
	PriorityLow    = "dusuk"
	PriorityMedium = "orta"
	PriorityHigh   = "yuksek"
	PriorityUrgent = "acil"
)

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

const (
	PaymentPending = "beklemede"
	PaymentPaid    = "odendi"
	PaymentPartial = "kismi"
)

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentPartial:
		return true
	}
	return false
}

// StringList stores attachment URLs as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, l)
	case string:
		return json.Unmarshal([]byte(b), l)
	}
	return errors.New("unsupported type for StringList")
}

type Repair struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`

	// Denormalized from the customer record; the customer id stays the
	// source of truth.
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	DeviceType  string `gorm:"not null" json:"device_type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Description string `json:"description"`

	Priority string `gorm:"type:varchar(20);default:'orta'" json:"priority"`
	Status   string `gorm:"type:varchar(20);default:'pending'" json:"status"`

	AssignedTechnicianID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_technician_id,omitempty"`
	// Denormalized; refreshed whenever the assignment changes.
	AssignedTechnicianName string `json:"assigned_technician_name,omitempty"`

	Images StringList `gorm:"type:text" json:"images"`

	CostEstimate  *float64 `gorm:"type:decimal(10,2)" json:"cost_estimate,omitempty"`
	FinalCost     *float64 `gorm:"type:decimal(10,2)" json:"final_cost,omitempty"`
	PaymentStatus string   `gorm:"type:varchar(20);default:'beklemede'" json:"payment_status"`

	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Set the first time the repair reaches completed, never cleared.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r *Repair) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
