package controllers

import (
	"net/http"

	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
)

// UploadController stores repair attachments on local disk; the stored URLs
// are served back via the static /uploads route.
type UploadController struct {
	UploadDir string
}

func (uc *UploadController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file provided")
		return
	}

	if err := utils.ValidateUploadFile(fileHeader); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	filename, err := utils.SaveUploadedFile(fileHeader, uc.UploadDir)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store file")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"url":      utils.FileURL(filename),
	})
}

func (uc *UploadController) UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No files provided")
		return
	}

	for _, fileHeader := range files {
		if err := utils.ValidateUploadFile(fileHeader); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	uploaded := make([]gin.H, 0, len(files))
	for _, fileHeader := range files {
		filename, err := utils.SaveUploadedFile(fileHeader, uc.UploadDir)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store file")
			return
		}
		uploaded = append(uploaded, gin.H{
			"filename": filename,
			"url":      utils.FileURL(filename),
		})
	}

	c.JSON(http.StatusOK, gin.H{"files": uploaded})
}
