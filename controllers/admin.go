package controllers

import (
	"net/http"

	"teknikservis-backend/models"
	"teknikservis-backend/services"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController holds the maintenance surface: bulk deletes, system reset,
// demo-data seeding and the on-demand reconciliation sweep. Admin only.
type AdminController struct {
	DB        *gorm.DB
	Demo      *services.DemoDataService
	Reconcile *services.ReconcileService
}

func (ac *AdminController) DeleteAllRepairs(c *gin.Context) {
	result := ac.DB.Where("1 = 1").Delete(&models.Repair{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete repairs")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "All repair records deleted",
		"deleted_repairs": result.RowsAffected,
	})
}

// DeleteAllCustomers removes every customer and every repair. Repairs go
// first so a crash in between leaves no customer pointing at dead repairs;
// the reverse orphaning is covered by the reconciliation sweep.
func (ac *AdminController) DeleteAllCustomers(c *gin.Context) {
	repairs := ac.DB.Where("1 = 1").Delete(&models.Repair{})
	if repairs.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete repairs")
		return
	}
	customers := ac.DB.Where("1 = 1").Delete(&models.Customer{})
	if customers.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "All customers and their repairs deleted",
		"deleted_customers": customers.RowsAffected,
		"deleted_repairs":   repairs.RowsAffected,
	})
}

// SystemReset wipes repairs, customers, notifications and every non-admin
// account. Admin users survive.
func (ac *AdminController) SystemReset(c *gin.Context) {
	repairs := ac.DB.Where("1 = 1").Delete(&models.Repair{})
	if repairs.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete repairs")
		return
	}
	customers := ac.DB.Where("1 = 1").Delete(&models.Customer{})
	if customers.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customers")
		return
	}
	notifications := ac.DB.Where("1 = 1").Delete(&models.Notification{})
	if notifications.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete notifications")
		return
	}
	users := ac.DB.Where("role <> ?", models.RoleAdmin).Delete(&models.User{})
	if users.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "System reset completed, admin users preserved",
		"deleted_repairs":       repairs.RowsAffected,
		"deleted_customers":     customers.RowsAffected,
		"deleted_notifications": notifications.RowsAffected,
		"deleted_users":         users.RowsAffected,
	})
}

func (ac *AdminController) CreateDemoData(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	result, err := ac.Demo.CreateDemoData(actor)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create demo data")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Demo data created",
		"users_created":     result.UsersCreated,
		"customers_created": result.CustomersCreated,
		"repairs_created":   result.RepairsCreated,
	})
}

func (ac *AdminController) RunReconcile(c *gin.Context) {
	count, err := ac.Reconcile.SweepOrphanedRepairs()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Reconciliation sweep failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Reconciliation sweep completed",
		"deleted_repairs": count,
	})
}
