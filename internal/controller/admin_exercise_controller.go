package controller

import (
	"strconv"

	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminExerciseController struct {
	Service *service.ExerciseService
}

func NewAdminExerciseController(svc *service.ExerciseService) *AdminExerciseController {
	return &AdminExerciseController{Service: svc}
}

// @Summary List exercises for the back office
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param theme_id query string false "theme filter"
// @Param team query string false "team filter"
// @Param published query bool false "published filter"
// @Param limit query int false "row limit"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises [get]
func (c *AdminExerciseController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	filter := repository.AdminExerciseFilter{
		ThemeID: ctx.Query("theme_id"),
		Team:    ctx.Query("team"),
	}
	if raw := ctx.Query("published"); raw != "" {
		published := raw == "true" || raw == "1"
		filter.IsPublished = &published
	}
	if raw := ctx.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	rows, err := c.Service.AdminList(user.UserID, user.Role, filter)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// @Summary Exercise detail with answers, for editing
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exercise id"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises/{id} [get]
func (c *AdminExerciseController) Get(ctx *gin.Context) {
	exercise, questions, err := c.Service.AdminGet(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"exercise":  exercise,
		"questions": questions,
	})
}

// @Summary Create an exercise with its questions
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExerciseReq true "exercise"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises [post]
func (c *AdminExerciseController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.ExerciseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Service.Create(user.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, exercise)
}

// @Summary Update an exercise, replacing its question set
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exercise id"
// @Param body body service.ExerciseReq true "exercise"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises/{id} [put]
func (c *AdminExerciseController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req service.ExerciseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Service.Update(user.UserID, user.Role, ctx.Param("id"), req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, exercise)
}

// @Summary Retire an exercise from the catalog
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "exercise id"
// @Success 200 {object} util.Response
// @Router /api/admin/exercises/{id} [delete]
func (c *AdminExerciseController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	if err := c.Service.Delete(user.UserID, user.Role, ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}
