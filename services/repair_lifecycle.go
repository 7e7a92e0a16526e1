package services

import (
	"errors"
	"time"

	"teknikservis-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepairLifecycle owns repair creation and status transitions together with
// their side effects: timestamps, denormalized fields, notifications and the
// admin-triggered SMS push. Every status write goes through setStatus.
type RepairLifecycle struct {
	db            *gorm.DB
	policy        *AccessPolicy
	notifications *NotificationService
	sms           StatusSMSSender
}

func NewRepairLifecycle(db *gorm.DB, policy *AccessPolicy, notifications *NotificationService, sms StatusSMSSender) *RepairLifecycle {
	return &RepairLifecycle{
		db:            db,
		policy:        policy,
		notifications: notifications,
		sms:           sms,
	}
}

type CreateRepairInput struct {
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	DeviceType   string    `json:"device_type" binding:"required"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Description  string    `json:"description" binding:"required"`
	Priority     string    `json:"priority"`
	CostEstimate *float64  `json:"cost_estimate"`
	Images       []string  `json:"images"`
}

type UpdateRepairInput struct {
	Status               *string    `json:"status"`
	AssignedTechnicianID *uuid.UUID `json:"assigned_technician_id"`
	CostEstimate         *float64   `json:"cost_estimate"`
	FinalCost            *float64   `json:"final_cost"`
	PaymentStatus        *string    `json:"payment_status"`
	Images               *[]string  `json:"images"`
}

// CreateRepair resolves the customer, checks policy, denormalizes customer
// fields onto the new record and emits a new_repair notification.
func (l *RepairLifecycle) CreateRepair(actor *models.User, input CreateRepairInput) (*models.Repair, error) {
	var customer models.Customer
	if err := l.db.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !l.policy.CanCreateRepair(actor, &customer) {
		return nil, ErrForbidden
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, NewValidationError("Invalid priority")
	}

	repair := models.Repair{
		CustomerID:    customer.ID,
		CustomerName:  customer.FullName,
		CustomerPhone: customer.Phone,
		DeviceType:    input.DeviceType,
		Brand:         input.Brand,
		Model:         input.Model,
		Description:   input.Description,
		Priority:      priority,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		Images:        models.StringList(input.Images),
		CostEstimate:  input.CostEstimate,
		CreatedBy:     actor.ID,
	}

	if err := l.db.Create(&repair).Error; err != nil {
		return nil, err
	}

	l.notifications.NotifyNewRepair(&repair)
	return &repair, nil
}

// GetRepair resolves the repair (404 first) and then checks read access.
func (l *RepairLifecycle) GetRepair(actor *models.User, repairID uuid.UUID) (*models.Repair, error) {
	repair, owner, err := l.resolve(repairID)
	if err != nil {
		return nil, err
	}
	if !l.policy.CanReadRepair(actor, repair, owner) {
		return nil, ErrForbidden
	}
	return repair, nil
}

// UpdateRepair applies a partial update. If the payload carries a status, a
// repair_status_update notification is emitted; an assignment change
// refreshes the denormalized technician name.
func (l *RepairLifecycle) UpdateRepair(actor *models.User, repairID uuid.UUID, input UpdateRepairInput) (*models.Repair, error) {
	repair, owner, err := l.resolve(repairID)
	if err != nil {
		return nil, err
	}
	if !l.policy.CanModifyRepair(actor, repair, owner) {
		return nil, ErrForbidden
	}

	if input.Status != nil && !models.ValidStatus(*input.Status) {
		return nil, NewValidationError("Invalid status")
	}
	if input.PaymentStatus != nil && !models.ValidPaymentStatus(*input.PaymentStatus) {
		return nil, NewValidationError("Invalid payment status")
	}

	if input.AssignedTechnicianID != nil {
		repair.AssignedTechnicianID = input.AssignedTechnicianID
		// Refresh the denormalized name; if the technician is unknown the
		// id stays set and the name is cleared.
		repair.AssignedTechnicianName = ""
		var technician models.User
		err := l.db.Where("id = ? AND role = ?", *input.AssignedTechnicianID, models.RoleTechnician).
			First(&technician).Error
		if err == nil {
			repair.AssignedTechnicianName = technician.FullName
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if input.CostEstimate != nil {
		repair.CostEstimate = input.CostEstimate
	}
	if input.FinalCost != nil {
		repair.FinalCost = input.FinalCost
	}
	if input.PaymentStatus != nil {
		repair.PaymentStatus = *input.PaymentStatus
	}
	if input.Images != nil {
		repair.Images = models.StringList(*input.Images)
	}
	if input.Status != nil {
		l.setStatus(repair, *input.Status)
	}

	if err := l.db.Save(repair).Error; err != nil {
		return nil, err
	}

	if input.Status != nil {
		l.notifications.NotifyStatusUpdate(repair, *input.Status)
	}
	return repair, nil
}

// CancelRepair sets the status to cancelled and emits a repair_cancelled
// notification instead of the generic status update.
func (l *RepairLifecycle) CancelRepair(actor *models.User, repairID uuid.UUID) (*models.Repair, error) {
	repair, owner, err := l.resolve(repairID)
	if err != nil {
		return nil, err
	}
	if !l.policy.CanModifyRepair(actor, repair, owner) {
		return nil, ErrForbidden
	}

	l.setStatus(repair, models.StatusCancelled)
	if err := l.db.Save(repair).Error; err != nil {
		return nil, err
	}

	l.notifications.NotifyRepairCancelled(repair)
	return repair, nil
}

// SetStatusWithNotification is the admin-only status set that also pushes an
// SMS to the customer. The SMS outcome is reported but never fails the
// status change.
func (l *RepairLifecycle) SetStatusWithNotification(actor *models.User, repairID uuid.UUID, status string) (*models.Repair, bool, string, error) {
	repair, _, err := l.resolve(repairID)
	if err != nil {
		return nil, false, "", err
	}
	if !l.policy.CanSetStatusWithSMS(actor) {
		return nil, false, "", ErrForbidden
	}
	if !models.ValidStatus(status) {
		return nil, false, "", NewValidationError("Invalid status")
	}

	l.setStatus(repair, status)
	if err := l.db.Save(repair).Error; err != nil {
		return nil, false, "", err
	}

	l.notifications.NotifyStatusUpdate(repair, status)

	sent, detail := l.sms.SendStatusSMS(repair.CustomerPhone, repair.CustomerName, repair.DeviceType, status)
	return repair, sent, detail, nil
}

// DeleteRepair removes one repair subject to the modify rule.
func (l *RepairLifecycle) DeleteRepair(actor *models.User, repairID uuid.UUID) error {
	repair, owner, err := l.resolve(repairID)
	if err != nil {
		return err
	}
	if !l.policy.CanModifyRepair(actor, repair, owner) {
		return ErrForbidden
	}
	return l.db.Delete(repair).Error
}

// setStatus is the single entry point for status writes. Transitions are
// permissive; completed_at is stamped once and never cleared.
func (l *RepairLifecycle) setStatus(repair *models.Repair, status string) {
	repair.Status = status
	if status == models.StatusCompleted && repair.CompletedAt == nil {
		now := time.Now().UTC()
		repair.CompletedAt = &now
	}
}

// resolve loads the repair and its customer's owning technician. A missing
// repair is ErrNotFound; a missing customer just yields a nil owner.
func (l *RepairLifecycle) resolve(repairID uuid.UUID) (*models.Repair, *uuid.UUID, error) {
	var repair models.Repair
	if err := l.db.First(&repair, "id = ?", repairID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var customer models.Customer
	err := l.db.First(&customer, "id = ?", repair.CustomerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &repair, nil, nil
		}
		return nil, nil, err
	}
	return &repair, customer.CreatedByTechnician, nil
}
