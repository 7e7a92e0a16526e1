package controllers

import (
	"errors"
	"net/http"

	"teknikservis-backend/models"
	"teknikservis-backend/services"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB            *gorm.DB
	Policy        *services.AccessPolicy
	Notifications *services.NotificationService
}

type CreateCustomerInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
}

type UpdateCustomerInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// CreateCustomer creates a customer record. Technician-created records are
// owned by that technician.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	if !cc.Policy.CanCreateCustomer(actor) {
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
	}
	if actor.IsTechnician() {
		id := actor.ID
		customer.CreatedByTechnician = &id
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	cc.Notifications.NotifyNewCustomer(&customer)
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) GetCustomers(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	scope, ok := cc.Policy.CustomerListScope(actor)
	if !ok {
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var customers []models.Customer
	if err := scope(cc.DB).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// Me returns the customer record matching the authenticated customer's
// email, implicitly creating it on first lookup.
func (cc *CustomerController) Me(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	if !actor.IsCustomer() {
		utils.RespondWithError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var customer models.Customer
	err := cc.DB.Where("email = ?", actor.Email).First(&customer).Error
	if err == nil {
		c.JSON(http.StatusOK, customer)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer = models.Customer{
		FullName: actor.FullName,
		Email:    actor.Email,
		Phone:    actor.Phone,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer record")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	customer, ok := cc.resolveCustomer(c)
	if !ok {
		return
	}
	if !cc.Policy.CanAccessCustomer(actor, customer) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	customer, ok := cc.resolveCustomer(c)
	if !ok {
		return
	}
	if !cc.Policy.CanAccessCustomer(actor, customer) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := cc.DB.Save(customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes the customer and all its repairs. The two deletes
// are sequential, not transactional; the nightly reconciliation sweep
// cleans up repairs orphaned by a crash in between.
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	customer, ok := cc.resolveCustomer(c)
	if !ok {
		return
	}
	if !cc.Policy.CanAccessCustomer(actor, customer) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	repairsResult := cc.DB.Where("customer_id = ?", customer.ID).Delete(&models.Repair{})
	if repairsResult.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer repairs")
		return
	}

	if err := cc.DB.Delete(customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Customer deleted successfully",
		"deleted_repairs": repairsResult.RowsAffected,
	})
}

// GetCustomerRepairs lists the repairs of one customer, subject to the same
// ownership rule as reading the customer itself.
func (cc *CustomerController) GetCustomerRepairs(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	customer, ok := cc.resolveCustomer(c)
	if !ok {
		return
	}
	if !cc.Policy.CanAccessCustomer(actor, customer) {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	var repairs []models.Repair
	if err := cc.DB.Where("customer_id = ?", customer.ID).Find(&repairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repairs")
		return
	}
	c.JSON(http.StatusOK, repairs)
}

// resolveCustomer parses the id param and loads the record, writing the 400
// or 404 response itself. Existence is always checked before ownership.
func (cc *CustomerController) resolveCustomer(c *gin.Context) (*models.Customer, bool) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return nil, false
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &customer, true
}
