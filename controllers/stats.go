package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"teknikservis-backend/models"
	"teknikservis-backend/services"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsController serves the role-shaped stats, search and the per-technician
// report.
type StatsController struct {
	DB     *gorm.DB
	Policy *services.AccessPolicy
}

func (sc *StatsController) GetStats(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	switch {
	case actor.IsAdmin():
		c.JSON(http.StatusOK, gin.H{
			"total_repairs":     sc.countRepairs(nil, ""),
			"pending_repairs":   sc.countRepairs(nil, models.StatusPending),
			"completed_repairs": sc.countRepairs(nil, models.StatusCompleted),
			"total_customers":   sc.countModel(&models.Customer{}),
			"total_technicians": sc.countUsersByRole(models.RoleTechnician),
		})
	case actor.IsTechnician():
		c.JSON(http.StatusOK, gin.H{
			"my_repairs":   sc.countRepairsAssigned(actor.ID, ""),
			"my_pending":   sc.countRepairsAssigned(actor.ID, models.StatusPending),
			"my_completed": sc.countRepairsAssigned(actor.ID, models.StatusCompleted),
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"my_repairs": sc.countRepairs(&actor.ID, ""),
			"my_pending": sc.countRepairs(&actor.ID, models.StatusPending),
		})
	}
}

// Search looks through customers and repairs, role-scoped with the same
// filters the list endpoints use.
func (sc *StatsController) Search(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter is required")
		return
	}
	searchType := c.DefaultQuery("type", "all")
	pattern := "%" + query + "%"

	response := gin.H{}

	if searchType == "all" || searchType == "customers" {
		customers := []models.Customer{}
		if scope, ok := sc.Policy.CustomerListScope(actor); ok {
			err := scope(sc.DB).
				Where("full_name LIKE ? OR phone LIKE ? OR email LIKE ?", pattern, pattern, pattern).
				Limit(50).
				Find(&customers).Error
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Search failed")
				return
			}
		}
		response["customers"] = customers
	}

	if searchType == "all" || searchType == "repairs" {
		repairs := []models.Repair{}
		scope := sc.Policy.RepairListScope(actor)
		err := scope(sc.DB).
			Where("device_type LIKE ? OR brand LIKE ? OR description LIKE ? OR customer_name LIKE ?",
				pattern, pattern, pattern, pattern).
			Limit(50).
			Find(&repairs).Error
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Search failed")
			return
		}
		response["repairs"] = repairs
	}

	c.JSON(http.StatusOK, response)
}

// TechnicianReport reports one technician's workload: totals per status and
// completions in the last 30 days. Admins may view anyone, a technician only
// themself.
func (sc *StatsController) TechnicianReport(c *gin.Context) {
	actor, _ := utils.CurrentUser(c)

	technicianID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		return
	}

	var technician models.User
	if err := sc.DB.Where("id = ? AND role = ?", technicianID, models.RoleTechnician).First(&technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !actor.IsAdmin() && actor.ID != technician.ID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	byStatus := gin.H{}
	for _, status := range []string{
		models.StatusPending, models.StatusApproved, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusRejected,
	} {
		byStatus[status] = sc.countRepairsAssigned(technician.ID, status)
	}

	since := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -30)
	var recentCompleted int64
	sc.DB.Model(&models.Repair{}).
		Where("assigned_technician_id = ? AND status = ? AND completed_at >= ?",
			technician.ID, models.StatusCompleted, since).
		Count(&recentCompleted)

	c.JSON(http.StatusOK, gin.H{
		"technician_id":     technician.ID,
		"technician_name":   technician.FullName,
		"total_assigned":    sc.countRepairsAssigned(technician.ID, ""),
		"by_status":         byStatus,
		"completed_last_30": recentCompleted,
	})
}

func (sc *StatsController) countModel(model interface{}) int64 {
	var count int64
	sc.DB.Model(model).Count(&count)
	return count
}

func (sc *StatsController) countUsersByRole(role string) int64 {
	var count int64
	sc.DB.Model(&models.User{}).Where("role = ?", role).Count(&count)
	return count
}

func (sc *StatsController) countRepairs(createdBy *uuid.UUID, status string) int64 {
	query := sc.DB.Model(&models.Repair{})
	if createdBy != nil {
		query = query.Where("created_by = ?", *createdBy)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	query.Count(&count)
	return count
}

func (sc *StatsController) countRepairsAssigned(technicianID uuid.UUID, status string) int64 {
	query := sc.DB.Model(&models.Repair{}).Where("assigned_technician_id = ?", technicianID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	query.Count(&count)
	return count
}
