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

type RepairController struct {
	DB        *gorm.DB
	Policy    *services.AccessPolicy
	Lifecycle *services.RepairLifecycle
}

type SetStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (rc *RepairController) CreateRepair(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	var input services.CreateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	repair, err := rc.Lifecycle.CreateRepair(actor, input)
	if err != nil {
		respondLifecycleError(c, err, "Customer not found")
		return
	}
	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) GetRepairs(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	var repairs []models.Repair
	scope := rc.Policy.RepairListScope(actor)
	if err := scope(rc.DB).Order("created_at DESC").Find(&repairs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve repairs")
		return
	}
	c.JSON(http.StatusOK, repairs)
}

func (rc *RepairController) GetRepair(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	repairID, ok := parseRepairID(c)
	if !ok {
		return
	}
	repair, err := rc.Lifecycle.GetRepair(actor, repairID)
	if err != nil {
		respondLifecycleError(c, err, "Repair request not found")
		return
	}
	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) UpdateRepair(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	repairID, ok := parseRepairID(c)
	if !ok {
		return
	}

	var input services.UpdateRepairInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	repair, err := rc.Lifecycle.UpdateRepair(actor, repairID, input)
	if err != nil {
		respondLifecycleError(c, err, "Repair request not found")
		return
	}
	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) DeleteRepair(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	repairID, ok := parseRepairID(c)
	if !ok {
		return
	}
	if err := rc.Lifecycle.DeleteRepair(actor, repairID); err != nil {
		respondLifecycleError(c, err, "Repair request not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Repair request deleted successfully"})
}

func (rc *RepairController) CancelRepair(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	repairID, ok := parseRepairID(c)
	if !ok {
		return
	}
	repair, err := rc.Lifecycle.CancelRepair(actor, repairID)
	if err != nil {
		respondLifecycleError(c, err, "Repair request not found")
		return
	}
	c.JSON(http.StatusOK, repair)
}

// SetStatus is the admin-only status change that also pushes an SMS to the
// customer. The SMS outcome rides along in the response.
func (rc *RepairController) SetStatus(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	repairID, ok := parseRepairID(c)
	if !ok {
		return
	}

	var input SetStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	repair, sent, detail, err := rc.Lifecycle.SetStatusWithNotification(actor, repairID, input.Status)
	if err != nil {
		respondLifecycleError(c, err, "Repair request not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"repair":     repair,
		"sms_sent":   sent,
		"sms_detail": detail,
	})
}

// parseRepairID treats a malformed id like a missing record.
func parseRepairID(c *gin.Context) (uuid.UUID, bool) {
	repairID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Repair request not found")
		return uuid.Nil, false
	}
	return repairID, true
}

func respondLifecycleError(c *gin.Context, err error, notFoundMessage string) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
	case errors.As(err, &validationErr):
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, notFoundMessage)
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
