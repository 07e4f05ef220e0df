package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ExerciseService struct {
	Exercises *repository.ExerciseRepository
	Themes    *repository.ThemeRepository
	Activity  *ActivityService
}

func NewExerciseService(exercises *repository.ExerciseRepository, themes *repository.ThemeRepository, activity *ActivityService) *ExerciseService {
	return &ExerciseService{Exercises: exercises, Themes: themes, Activity: activity}
}

type QuestionReq struct {
	QuestionText  string          `json:"question_text"`
	QuestionType  string          `json:"question_type"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
	Points        int             `json:"points"`
	Hint          string          `json:"hint"`
	OrderIndex    int             `json:"order_index"`
}

type ExerciseReq struct {
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	ThemeID             string          `json:"theme_id"`
	Difficulty          string          `json:"difficulty"`
	DurationMinutes     int             `json:"duration_minutes"`
	CourseContent       string          `json:"course_content"`
	CourseBlocks        json.RawMessage `json:"course_blocks"`
	ContainerTemplateID *string         `json:"container_template_id"`
	IsPublished         bool            `json:"is_published"`
	OrderIndex          int             `json:"order_index"`
	Questions           []QuestionReq   `json:"questions"`
}

// buildQuestions converts request questions to rows, defaulting each to 10
// points, and returns the rows with their summed maximum.
func buildQuestions(reqs []QuestionReq) ([]model.Question, int) {
	questions := make([]model.Question, 0, len(reqs))
	pointsMax := 0
	for _, q := range reqs {
		points := q.Points
		if points <= 0 {
			points = 10
		}
		pointsMax += points
		questions = append(questions, model.Question{
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
			Hint:          q.Hint,
			OrderIndex:    q.OrderIndex,
		})
	}
	return questions, pointsMax
}

func (s *ExerciseService) Create(creatorID string, req ExerciseReq) (*model.Exercise, error) {
	if req.Title == "" || req.ThemeID == "" {
		return nil, fmt.Errorf("%w: title and theme_id are required", util.ErrInvalidRequest)
	}

	questions, pointsMax := buildQuestions(req.Questions)

	blocks := req.CourseBlocks
	if len(blocks) == 0 {
		blocks = json.RawMessage("[]")
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "beginner"
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	exercise := &model.Exercise{
		ThemeID:             req.ThemeID,
		Title:               req.Title,
		Description:         req.Description,
		Difficulty:          difficulty,
		DurationMinutes:     duration,
		PointsMax:           pointsMax,
		CourseContent:       req.CourseContent,
		CourseBlocks:        blocks,
		ContainerTemplateID: req.ContainerTemplateID,
		IsPublished:         req.IsPublished,
		IsActive:            true,
		OrderIndex:          req.OrderIndex,
		CreatedBy:           creatorID,
		UpdatedBy:           creatorID,
	}

	if err := s.Exercises.CreateWithQuestions(exercise, questions); err != nil {
		return nil, err
	}

	action := "create"
	if exercise.IsPublished {
		action = "publish"
	}
	s.Activity.Log(creatorID, action, "exercise", exercise.ID, exercise.Title)

	return exercise, nil
}

func (s *ExerciseService) Update(actorID string, actorRole model.UserRole, exerciseID string, req ExerciseReq) (*model.Exercise, error) {
	exercise, err := s.Exercises.FindByID(exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if actorRole != model.SuperAdmin && exercise.CreatedBy != actorID {
		return nil, util.ErrForbidden
	}

	if req.Title == "" || req.ThemeID == "" {
		return nil, fmt.Errorf("%w: title and theme_id are required", util.ErrInvalidRequest)
	}

	questions, pointsMax := buildQuestions(req.Questions)

	blocks := req.CourseBlocks
	if len(blocks) == 0 {
		blocks = json.RawMessage("[]")
	}

	exercise.Title = req.Title
	exercise.Description = req.Description
	exercise.ThemeID = req.ThemeID
	if req.Difficulty != "" {
		exercise.Difficulty = req.Difficulty
	}
	if req.DurationMinutes > 0 {
		exercise.DurationMinutes = req.DurationMinutes
	}
	exercise.PointsMax = pointsMax
	exercise.CourseContent = req.CourseContent
	exercise.CourseBlocks = blocks
	exercise.ContainerTemplateID = req.ContainerTemplateID
	exercise.IsPublished = req.IsPublished
	exercise.OrderIndex = req.OrderIndex
	exercise.UpdatedBy = actorID

	if err := s.Exercises.UpdateWithQuestions(exercise, questions); err != nil {
		return nil, err
	}

	action := "update"
	if exercise.IsPublished {
		action = "publish"
	}
	s.Activity.Log(actorID, action, "exercise", exercise.ID, exercise.Title)

	return exercise, nil
}

// Delete flips the active flag. The row survives and stays reachable through
// admin id lookups.
func (s *ExerciseService) Delete(actorID string, actorRole model.UserRole, exerciseID string) error {
	exercise, err := s.Exercises.FindByID(exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	if err != nil {
		return err
	}

	if actorRole != model.SuperAdmin && exercise.CreatedBy != actorID {
		return util.ErrForbidden
	}

	if err := s.Exercises.SoftDelete(exerciseID, actorID); err != nil {
		return err
	}

	s.Activity.Log(actorID, "delete", "exercise", exerciseID, exercise.Title)
	return nil
}

func (s *ExerciseService) AdminGet(exerciseID string) (*model.Exercise, []model.Question, error) {
	exercise, err := s.Exercises.FindByID(exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.Exercises.ListQuestions(exerciseID)
	if err != nil {
		return nil, nil, err
	}
	return exercise, questions, nil
}

// AdminList scopes editors to their own exercises unless they filter on a
// creator explicitly; superadmins see everything.
func (s *ExerciseService) AdminList(actorID string, actorRole model.UserRole, filter repository.AdminExerciseFilter) ([]repository.AdminExerciseRow, error) {
	if actorRole != model.SuperAdmin && filter.CreatedBy == "" {
		filter.CreatedBy = actorID
	}
	return s.Exercises.AdminList(filter)
}

// PublicGet returns a published exercise with its theme context. Answers are
// never part of this payload.
type PublicExerciseDetail struct {
	*model.Exercise
	ThemeName string         `json:"theme_name"`
	TeamType  model.TeamType `json:"team_type"`
}

func (s *ExerciseService) PublicGet(exerciseID string) (*PublicExerciseDetail, error) {
	exercise, err := s.Exercises.FindPublishedByID(exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	theme, err := s.Themes.FindActiveByID(exercise.ThemeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	detail := &PublicExerciseDetail{Exercise: exercise}
	if theme != nil {
		detail.ThemeName = theme.Name
		detail.TeamType = theme.TeamType
	}
	return detail, nil
}

// PublicQuestion is the student-facing view of a question: the correct answer
// stays server-side.
type PublicQuestion struct {
	ID           string          `json:"id"`
	QuestionText string          `json:"question_text"`
	QuestionType string          `json:"question_type"`
	Options      json.RawMessage `json:"options,omitempty"`
	Points       int             `json:"points"`
	Hint         string          `json:"hint,omitempty"`
	OrderIndex   int             `json:"order_index"`
}

func (s *ExerciseService) PublicQuestions(exerciseID string) ([]PublicQuestion, error) {
	questions, err := s.Exercises.ListQuestions(exerciseID)
	if err != nil {
		return nil, err
	}

	public := make([]PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, PublicQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Options:      q.Options,
			Points:       q.Points,
			Hint:         q.Hint,
			OrderIndex:   q.OrderIndex,
		})
	}
	return public, nil
}
