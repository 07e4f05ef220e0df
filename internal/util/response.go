package util

import (
	"cyberhub_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable error codes returned to clients. Each maps to a fixed HTTP status.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDBError            = "DB_ERROR"
	CodeServerError        = "SERVER_ERROR"
	CodeNoLab              = "NO_LAB"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, CodeNotFound, message)
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

func InvalidCredentials(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
}

func NoLab(c *gin.Context) {
	Fail(c, http.StatusNotFound, CodeNoLab, "no lab available for this exercise")
}

// DBError hides the underlying cause from the caller and logs it instead.
func DBError(c *gin.Context, err error) {
	logger.Log.Error("database error", zap.String("path", c.FullPath()), zap.Error(err))
	Fail(c, http.StatusInternalServerError, CodeDBError, "database error")
}

func ServerError(c *gin.Context, err error) {
	logger.Log.Error("internal server error", zap.String("path", c.FullPath()), zap.Error(err))
	Fail(c, http.StatusInternalServerError, CodeServerError, "internal server error")
}
