package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"teknikservis-backend/models"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationController serves the admin notification feed.
type NotificationController struct {
	DB *gorm.DB
}

func (nc *NotificationController) GetNotifications(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var notifications []models.Notification
	if err := nc.DB.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		return
	}

	var notification models.Notification
	if err := nc.DB.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	notification.IsRead = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	var count int64
	if err := nc.DB.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (nc *NotificationController) ClearAll(c *gin.Context) {
	result := nc.DB.Where("1 = 1").Delete(&models.Notification{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "All notifications cleared",
		"deleted_count": result.RowsAffected,
	})
}
