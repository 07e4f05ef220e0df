package controller

import (
	"cyberhub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service sentinels onto the stable wire codes.
// Anything unrecognized is a persistence failure: logged, never leaked.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidRequest):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(c, "resource not found")
	case errors.Is(err, util.ErrForbidden):
		util.Forbidden(c, "permission denied")
	case errors.Is(err, util.ErrInvalidCredentials):
		util.InvalidCredentials(c)
	case errors.Is(err, util.ErrNoLab):
		util.NoLab(c)
	default:
		util.DBError(c, err)
	}
}
