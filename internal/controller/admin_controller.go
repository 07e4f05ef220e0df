package controller

import (
	"strconv"

	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController covers the back-office odds and ends: dashboard counters,
// the editor roster and the activity feed.
type AdminController struct {
	Dashboard *service.DashboardService
	Activity  *service.ActivityService
	Users     *repository.UserRepository
}

func NewAdminController(dashboard *service.DashboardService, activity *service.ActivityService, users *repository.UserRepository) *AdminController {
	return &AdminController{Dashboard: dashboard, Activity: activity, Users: users}
}

// @Summary Dashboard counters, scoped to the caller for editors
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/dashboard [get]
func (c *AdminController) DashboardCounts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	counts, err := c.Dashboard.Counts(user.UserID, user.Role)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, counts)
}

// @Summary Editor accounts with authoring stats
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/editors [get]
func (c *AdminController) ListEditors(ctx *gin.Context) {
	rows, err := c.Users.ListEditorsWithStats()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// @Summary Recent back-office activity
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "row limit, default 50"
// @Success 200 {object} util.Response
// @Router /api/admin/activity [get]
func (c *AdminController) ListActivity(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	rows, err := c.Activity.List(limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
