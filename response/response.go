package response

import (
	"net/http"

	"spotbook/dto"
	apperrors "spotbook/errors"

	"github.com/gin-gonic/gin"
)

// Success writes data as a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data as a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message writes a 200 response carrying only a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func Error(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, dto.ErrorResponse{Message: message, Errors: fields})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Authentication required", nil)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

// Status maps an error code to its HTTP status.
// Booking conflicts, duplicate reviews and the image cap are 403s.
func Status(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden, apperrors.ErrCodePastResource, apperrors.ErrCodeConflict,
		apperrors.ErrCodeAlreadyExists, apperrors.ErrCodeLimitExceeded:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation, apperrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		// USER_EXISTS stays a 500.
		return http.StatusInternalServerError
	}
}

// FromError renders err. Anything that is not an AppError is a 500.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := Status(appErr.Code)
	if status == http.StatusInternalServerError && appErr.Code == apperrors.ErrCodeInternal {
		ServerError(c)
		return
	}
	Error(c, status, appErr.Message, appErr.Fields)
}
