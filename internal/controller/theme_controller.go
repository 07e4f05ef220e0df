package controller

import (
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ThemeController struct {
	Service *service.ThemeService
}

func NewThemeController(svc *service.ThemeService) *ThemeController {
	return &ThemeController{Service: svc}
}

// @Summary List active themes with published exercise counts
// @Tags public
// @Produce json
// @Param team query string false "team filter (red or blue)"
// @Success 200 {object} util.Response
// @Router /api/themes [get]
func (c *ThemeController) List(ctx *gin.Context) {
	themes, err := c.Service.List(ctx.Query("team"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, themes)
}

// @Summary Theme detail with its published exercises
// @Tags public
// @Produce json
// @Param id path string true "theme id"
// @Success 200 {object} util.Response
// @Router /api/themes/{id} [get]
func (c *ThemeController) Get(ctx *gin.Context) {
	detail, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// @Summary Create a theme
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ThemeReq true "theme"
// @Success 200 {object} util.Response
// @Router /api/admin/themes [post]
func (c *ThemeController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.ThemeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	theme, err := c.Service.Create(user.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, theme)
}
