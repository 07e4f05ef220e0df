package controller

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/service"
	"cyberhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	Exercises *service.ExerciseService
	Grading   *service.GradingService
}

func NewExerciseController(exercises *service.ExerciseService, grading *service.GradingService) *ExerciseController {
	return &ExerciseController{Exercises: exercises, Grading: grading}
}

type exerciseDetailResponse struct {
	*service.PublicExerciseDetail
	// PreviousResult is the caller's best-ever result, present only when the
	// request carries a resolved student code.
	PreviousResult *model.ExerciseResult `json:"previous_result,omitempty"`
}

// @Summary Published exercise detail with course content
// @Tags public
// @Produce json
// @Param id path string true "exercise id"
// @Param X-Student-Code header string false "student code, adds previous_result"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	detail, err := c.Exercises.PublicGet(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	response := &exerciseDetailResponse{PublicExerciseDetail: detail}
	if studentID := util.GetStudentIDFromContext(ctx); studentID != "" {
		best, err := c.Grading.BestResult(studentID, detail.ID)
		if err != nil {
			handleServiceError(ctx, err)
			return
		}
		response.PreviousResult = best
	}

	util.Success(ctx, response)
}

// @Summary Exercise questions with answers stripped
// @Tags public
// @Produce json
// @Param id path string true "exercise id"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id}/questions [get]
func (c *ExerciseController) Questions(ctx *gin.Context) {
	questions, err := c.Exercises.PublicQuestions(ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

type submitReq struct {
	Answers map[string]interface{} `json:"answers"`
}

// @Summary Grade a submission and update the student's standing
// @Tags public
// @Accept json
// @Produce json
// @Param X-Student-Code header string true "student code"
// @Param id path string true "exercise id"
// @Param body body submitReq true "answers keyed by question id"
// @Success 200 {object} util.Response
// @Router /api/exercises/{id}/submit [post]
func (c *ExerciseController) Submit(ctx *gin.Context) {
	studentID := util.GetStudentIDFromContext(ctx)

	var req submitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "invalid request body")
		return
	}

	result, err := c.Grading.SubmitExercise(studentID, ctx.Param("id"), req.Answers)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
