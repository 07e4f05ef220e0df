package controller

import (
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(svc *service.StudentService) *StudentController {
	return &StudentController{Service: svc}
}

type registerReq struct {
	StudentCode string `json:"student_code"`
	DisplayName string `json:"display_name"`
}

// @Summary Register a student code, idempotently
// @Tags public
// @Accept json
// @Produce json
// @Param body body registerReq true "student identity"
// @Success 200 {object} util.Response
// @Router /api/students/register [post]
func (c *StudentController) Register(ctx *gin.Context) {
	var req registerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	result, err := c.Service.Register(req.StudentCode, req.DisplayName)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Personal stats for a student code
// @Tags public
// @Produce json
// @Param code path string true "student code"
// @Success 200 {object} util.Response
// @Router /api/students/{code}/stats [get]
func (c *StudentController) Stats(ctx *gin.Context) {
	stats, err := c.Service.StatsByCode(ctx.Param("code"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary Every student with scoreboard standing
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/students [get]
func (c *StudentController) AdminList(ctx *gin.Context) {
	rows, err := c.Service.AdminList()
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
