package controllers

import (
	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/response"
	"spotbook/services"
	"spotbook/services/logger"

	"github.com/gin-gonic/gin"
)

const uploadFolder = "spotbook"

type UploadController struct {
	Uploader services.ImageUploader
	Logger   logger.Logger
}

func NewUploadController(uploader services.ImageUploader, log logger.Logger) UploadController {
	return UploadController{Uploader: uploader, Logger: log}
}

// Upload godoc
// @Summary      Upload an image
// @Description  Stores the file and returns its URL for use in image endpoints.
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/images/upload [post]
func (u UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		abort(c, apperrors.NewFieldError(apperrors.ErrCodeValidation, "Bad Request", map[string]string{"file": "File is required"}))
		return
	}
	file, err := header.Open()
	if err != nil {
		abort(c, apperrors.Internal(err))
		return
	}
	defer file.Close()

	url, err := u.Uploader.Upload(c.Request.Context(), file, uploadFolder)
	if err != nil {
		u.Logger.Error("upload %s: %v", header.Filename, err)
		abort(c, apperrors.Internal(err))
		return
	}
	response.Created(c, dto.UploadResponse{URL: url})
}
