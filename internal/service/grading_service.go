package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"cyberhub_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

type GradingService struct {
	Submissions *repository.SubmissionRepository
	Exercises   *repository.ExerciseRepository
	Students    *repository.StudentRepository
	Scoreboard  *ScoreboardService
	DB          *gorm.DB
}

func NewGradingService(
	submissions *repository.SubmissionRepository,
	exercises *repository.ExerciseRepository,
	students *repository.StudentRepository,
	scoreboard *ScoreboardService,
	db *gorm.DB,
) *GradingService {
	return &GradingService{
		Submissions: submissions,
		Exercises:   exercises,
		Students:    students,
		Scoreboard:  scoreboard,
		DB:          db,
	}
}

type QuestionResult struct {
	QuestionID   string `json:"question_id"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
	// CorrectAnswer is revealed only for wrong answers.
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

type SubmitSummary struct {
	TotalEarned int `json:"total_earned"`
	MaxScore    int `json:"max_score"`
	Percentage  int `json:"percentage"`
}

type SubmitResult struct {
	Results []QuestionResult `json:"results"`
	Summary SubmitSummary    `json:"summary"`
}

// normalizeAnswer is the whole comparison rule: lower-cased, surrounding
// whitespace trimmed, exact equality. Every question type is graded the same
// way; multi-choice answers arrive as a JSON-encoded list on both sides.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// answerToString flattens a submitted value: strings pass through, anything
// structured is re-encoded as JSON.
func answerToString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

// SubmitExercise grades a student's answers, records one immutable submission
// row per graded question, folds the outcome into the student's best-ever
// result and lifetime totals, and refreshes the scoreboard. All writes happen
// in a single transaction.
func (s *GradingService) SubmitExercise(studentID, exerciseID string, answers map[string]interface{}) (*SubmitResult, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: no answers provided", util.ErrInvalidRequest)
	}

	questions, err := s.Exercises.ListQuestions(exerciseID)
	if err != nil {
		return nil, err
	}

	questionMap := make(map[string]*model.Question, len(questions))
	maxScore := 0
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
		maxScore += questions[i].Points
	}

	results := make([]QuestionResult, 0, len(answers))
	submissions := make([]model.Submission, 0, len(answers))
	totalEarned := 0

	for questionID, submitted := range answers {
		question, ok := questionMap[questionID]
		if !ok {
			// Stale or unknown question ids are ignored, not rejected.
			continue
		}

		submittedText := answerToString(submitted)
		isCorrect := normalizeAnswer(submittedText) == normalizeAnswer(question.CorrectAnswer)
		pointsEarned := 0
		if isCorrect {
			pointsEarned = question.Points
		}
		totalEarned += pointsEarned

		submissions = append(submissions, model.Submission{
			StudentID:       studentID,
			ExerciseID:      exerciseID,
			QuestionID:      questionID,
			SubmittedAnswer: submittedText,
			IsCorrect:       isCorrect,
			PointsEarned:    pointsEarned,
		})

		result := QuestionResult{
			QuestionID:   questionID,
			IsCorrect:    isCorrect,
			PointsEarned: pointsEarned,
		}
		if !isCorrect {
			result.CorrectAnswer = question.CorrectAnswer
		}
		results = append(results, result)
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(totalEarned) / float64(maxScore) * 100
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range submissions {
			if err := s.Submissions.Create(tx, &submissions[i]); err != nil {
				return err
			}
		}

		if err := s.Submissions.UpsertBestResult(tx, &model.ExerciseResult{
			StudentID:  studentID,
			ExerciseID: exerciseID,
			Score:      totalEarned,
			MaxScore:   maxScore,
			Percentage: percentage,
		}); err != nil {
			return err
		}

		if err := s.Students.RecomputeAggregates(tx, studentID); err != nil {
			return err
		}

		return s.Scoreboard.RefreshStudent(tx, studentID)
	})
	if err != nil {
		return nil, err
	}

	s.Scoreboard.InvalidateCache()
	monitoring.SubmissionCounter.WithLabelValues(s.teamForExercise(exerciseID)).Inc()

	return &SubmitResult{
		Results: results,
		Summary: SubmitSummary{
			TotalEarned: totalEarned,
			MaxScore:    maxScore,
			Percentage:  int(math.Round(percentage)),
		},
	}, nil
}

// BestResult returns the student's best-ever result for an exercise, or nil
// when they have not completed it.
func (s *GradingService) BestResult(studentID, exerciseID string) (*model.ExerciseResult, error) {
	result, err := s.Submissions.FindResult(studentID, exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *GradingService) teamForExercise(exerciseID string) string {
	var team string
	s.DB.Table("exercises e").
		Select("t.team_type").
		Joins("JOIN themes t ON e.theme_id = t.id").
		Where("e.id = ?", exerciseID).
		Scan(&team)
	if team == "" {
		team = "unknown"
	}
	return team
}
