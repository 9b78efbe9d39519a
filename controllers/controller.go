package controllers

import (
	"strconv"

	apperrors "spotbook/errors"

	"github.com/gin-gonic/gin"
)

// abort hands err to middleware.ErrorHandler.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// pathID reads a numeric path parameter. Ids that cannot name a row report
// notFound, the same as a missing row.
func pathID(c *gin.Context, name string, notFound *apperrors.AppError) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}
