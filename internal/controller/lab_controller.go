package controller

import (
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LabController struct {
	Service *service.LabService
}

func NewLabController(svc *service.LabService) *LabController {
	return &LabController{Service: svc}
}

type labStartReq struct {
	ExerciseID string `json:"exercise_id"`
}

// @Summary Open a lab session for an exercise
// @Tags labs
// @Accept json
// @Produce json
// @Param X-Student-Code header string true "student code"
// @Param body body labStartReq true "target exercise"
// @Success 200 {object} util.Response
// @Router /api/labs/start [post]
func (c *LabController) Start(ctx *gin.Context) {
	studentID := util.GetStudentIDFromContext(ctx)

	var req labStartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	session, err := c.Service.Start(studentID, req.ExerciseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary Poll a lab session
// @Tags labs
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} util.Response
// @Router /api/labs/{id} [get]
func (c *LabController) Get(ctx *gin.Context) {
	session, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, session)
}

// @Summary Stop a lab session
// @Tags labs
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} util.Response
// @Router /api/labs/{id} [delete]
func (c *LabController) Stop(ctx *gin.Context) {
	if err := c.Service.Stop(ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"stopped": true})
}

type labStatusReq struct {
	Status         string `json:"status"`
	ConnectionInfo string `json:"connection_info"`
}

// @Summary Orchestrator callback reporting a session transition
// @Tags labs
// @Accept json
// @Produce json
// @Param X-Orchestrator-Key header string true "shared orchestrator key"
// @Param id path string true "session id"
// @Param body body labStatusReq true "new state"
// @Success 200 {object} util.Response
// @Router /api/labs/{id}/status [put]
func (c *LabController) UpdateStatus(ctx *gin.Context) {
	var req labStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	session, err := c.Service.UpdateStatus(ctx.Param("id"), req.Status, req.ConnectionInfo)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, session)
}
