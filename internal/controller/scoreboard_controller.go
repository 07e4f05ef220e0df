package controller

import (
	"strconv"

	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScoreboardController struct {
	Service *service.ScoreboardService
}

func NewScoreboardController(svc *service.ScoreboardService) *ScoreboardController {
	return &ScoreboardController{Service: svc}
}

// @Summary Ranked scoreboard, overall or per team
// @Tags public
// @Produce json
// @Param team query string false "team view (red or blue)"
// @Param limit query int false "row limit, default 50"
// @Success 200 {object} util.Response
// @Router /api/scoreboard [get]
func (c *ScoreboardController) List(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	entries, err := c.Service.List(ctx.Query("team"), limit)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
