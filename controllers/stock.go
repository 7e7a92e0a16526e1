package controllers

import (
	"errors"
	"net/http"

	"teknikservis-backend/models"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockController tracks spare-part stock. Admin only.
type StockController struct {
	DB *gorm.DB
}

type CreateStockItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	MinQuantity int     `json:"min_quantity"`
	Supplier    string  `json:"supplier"`
	Price       float64 `json:"price"`
}

type UpdateStockItemInput struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Unit        *string  `json:"unit"`
	MinQuantity *int     `json:"min_quantity"`
	Supplier    *string  `json:"supplier"`
	Price       *float64 `json:"price"`
}

type AdjustQuantityInput struct {
	Operation string `json:"operation" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (sc *StockController) CreateStockItem(c *gin.Context) {
	var input CreateStockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Quantity < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	item := models.StockItem{
		Name:        input.Name,
		Category:    input.Category,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		MinQuantity: input.MinQuantity,
		Supplier:    input.Supplier,
		Price:       input.Price,
	}
	if item.Category == "" {
		item.Category = "Genel"
	}
	if item.Unit == "" {
		item.Unit = "adet"
	}

	if err := sc.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create stock item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (sc *StockController) GetStockItems(c *gin.Context) {
	var items []models.StockItem
	if err := sc.DB.Order("name").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (sc *StockController) UpdateStockItem(c *gin.Context) {
	item, ok := sc.resolveItem(c)
	if !ok {
		return
	}

	var input UpdateStockItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.MinQuantity != nil {
		item.MinQuantity = *input.MinQuantity
	}
	if input.Supplier != nil {
		item.Supplier = *input.Supplier
	}
	if input.Price != nil {
		item.Price = *input.Price
	}

	if err := sc.DB.Save(item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update stock item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (sc *StockController) DeleteStockItem(c *gin.Context) {
	item, ok := sc.resolveItem(c)
	if !ok {
		return
	}
	if err := sc.DB.Delete(item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete stock item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}

// AdjustQuantity applies a signed add/subtract. Quantity never drops below
// zero; an oversubtraction fails without changing the stored value.
func (sc *StockController) AdjustQuantity(c *gin.Context) {
	item, ok := sc.resolveItem(c)
	if !ok {
		return
	}

	var input AdjustQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Quantity <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	switch input.Operation {
	case "add":
		item.Quantity += input.Quantity
	case "subtract":
		if item.Quantity-input.Quantity < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Insufficient stock")
			return
		}
		item.Quantity -= input.Quantity
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid operation, use add or subtract")
		return
	}

	if err := sc.DB.Save(item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update stock item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (sc *StockController) GetLowStock(c *gin.Context) {
	var items []models.StockItem
	if err := sc.DB.Where("quantity <= min_quantity").Order("name").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (sc *StockController) resolveItem(c *gin.Context) (*models.StockItem, bool) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Stock item not found")
		return nil, false
	}

	var item models.StockItem
	if err := sc.DB.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Stock item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &item, true
}
