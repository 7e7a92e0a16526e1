package services

import (
	"teknikservis-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a list query to the rows an actor may see.
type Scope func(*gorm.DB) *gorm.DB

// AccessPolicy is the single place that decides who may do what. It is a
// pure component: callers resolve the records first (missing id is 404
// before ownership is ever evaluated) and pass them in.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanCreateCustomer: admins and technicians create customer records.
// Customer-role users only get the implicit self-record via /customers/me.
func (p *AccessPolicy) CanCreateCustomer(actor *models.User) bool {
	return actor.IsAdmin() || actor.IsTechnician()
}

// CanAccessCustomer covers read, update and delete on one customer record.
func (p *AccessPolicy) CanAccessCustomer(actor *models.User, customer *models.Customer) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsTechnician() {
		return customer.CreatedByTechnician != nil && *customer.CreatedByTechnician == actor.ID
	}
	return false
}

// CustomerListScope returns the filter for customer list queries. The second
// return value is false when the role may not list customers at all.
func (p *AccessPolicy) CustomerListScope(actor *models.User) (Scope, bool) {
	if actor.IsAdmin() {
		return func(db *gorm.DB) *gorm.DB { return db }, true
	}
	if actor.IsTechnician() {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("created_by_technician = ?", actor.ID)
		}, true
	}
	return nil, false
}

// CanCreateRepair: admins always; technicians only for their own customers;
// customer-role users only for the customer record matching their email.
func (p *AccessPolicy) CanCreateRepair(actor *models.User, customer *models.Customer) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsTechnician() {
		return customer.CreatedByTechnician != nil && *customer.CreatedByTechnician == actor.ID
	}
	if actor.IsCustomer() {
		return customer.Email != "" && customer.Email == actor.Email
	}
	return false
}

// CanReadRepair: customerOwner is the owning technician of the repair's
// customer record, nil when the customer is unowned or gone.
func (p *AccessPolicy) CanReadRepair(actor *models.User, repair *models.Repair, customerOwner *uuid.UUID) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsTechnician() {
		return p.technicianOwnsRepair(actor, repair, customerOwner)
	}
	if actor.IsCustomer() {
		return repair.CreatedBy == actor.ID
	}
	return false
}

// CanModifyRepair covers update, delete and cancel. Customer-role users may
// never mutate a repair, not even their own.
func (p *AccessPolicy) CanModifyRepair(actor *models.User, repair *models.Repair, customerOwner *uuid.UUID) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsTechnician() {
		return p.technicianOwnsRepair(actor, repair, customerOwner)
	}
	return false
}

// CanSetStatusWithSMS guards the dedicated status-set operation that pushes
// an SMS to the customer.
func (p *AccessPolicy) CanSetStatusWithSMS(actor *models.User) bool {
	return actor.IsAdmin()
}

// RepairListScope returns the filter for repair list queries.
func (p *AccessPolicy) RepairListScope(actor *models.User) Scope {
	if actor.IsAdmin() {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	if actor.IsTechnician() {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"assigned_technician_id = ? OR created_by = ? OR customer_id IN (?)",
				actor.ID, actor.ID,
				db.Session(&gorm.Session{NewDB: true}).
					Model(&models.Customer{}).
					Select("id").
					Where("created_by_technician = ?", actor.ID),
			)
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by = ?", actor.ID)
	}
}

func (p *AccessPolicy) technicianOwnsRepair(actor *models.User, repair *models.Repair, customerOwner *uuid.UUID) bool {
	if repair.AssignedTechnicianID != nil && *repair.AssignedTechnicianID == actor.ID {
		return true
	}
	if repair.CreatedBy == actor.ID {
		return true
	}
	return customerOwner != nil && *customerOwner == actor.ID
}
