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

// UserController covers the admin-only user management surface. Routes are
// gated with utils.RequireRoles(models.RoleAdmin).
type UserController struct {
	DB            *gorm.DB
	Notifications *services.NotificationService
}

type UpdateRoleInput struct {
	Role string `json:"role" binding:"required"`
}

type ApproveUserInput struct {
	Approved bool `json:"approved"`
}

func (uc *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetPendingUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Where("is_approved = ?", false).Order("created_at DESC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) UpdateRole(c *gin.Context) {
	user, ok := uc.resolveUser(c)
	if !ok {
		return
	}

	var input UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.ValidRole(input.Role) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	user.Role = input.Role
	if err := uc.DB.Save(user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ApproveUser approves or rejects a pending registration. A rejection keeps
// the row but deactivates the account.
func (uc *UserController) ApproveUser(c *gin.Context) {
	user, ok := uc.resolveUser(c)
	if !ok {
		return
	}

	var input ApproveUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Approved {
		user.IsApproved = true
	} else {
		user.IsApproved = false
		user.IsActive = false
	}

	if err := uc.DB.Save(user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	if input.Approved {
		uc.Notifications.NotifyAccountApproved(user)
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) resolveUser(c *gin.Context) (*models.User, bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return nil, false
	}

	var user models.User
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &user, true
}
