package controller

import (
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Back-office login
// @Tags admin
// @Accept json
// @Produce json
// @Param body body loginReq true "credentials"
// @Success 200 {object} util.Response
// @Router /api/admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "username and password are required")
		return
	}

	result, err := c.Service.Login(req.Username, req.Password)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Revoke the current session
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token, _ := ctx.Get("token")
	tokenStr, _ := token.(string)
	if tokenStr == "" {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.Logout(tokenStr); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"logged_out": true})
}

// @Summary Current back-office user
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	user, err := c.Service.GetUser(claims.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, user)
}
