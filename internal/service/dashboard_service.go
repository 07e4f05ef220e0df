package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
)

type DashboardService struct {
	Exercises *repository.ExerciseRepository
	Themes    *repository.ThemeRepository
	Students  *repository.StudentRepository
}

func NewDashboardService(exercises *repository.ExerciseRepository, themes *repository.ThemeRepository, students *repository.StudentRepository) *DashboardService {
	return &DashboardService{Exercises: exercises, Themes: themes, Students: students}
}

type DashboardCounts struct {
	ExercisesCount int64 `json:"exercises_count"`
	ThemesCount    int64 `json:"themes_count"`
	QuestionsCount int64 `json:"questions_count"`
	StudentsCount  int64 `json:"students_count"`
}

// Counts scopes exercise and question totals to the editor's own content;
// superadmins see platform-wide numbers.
func (s *DashboardService) Counts(actorID string, actorRole model.UserRole) (*DashboardCounts, error) {
	scope := actorID
	if actorRole == model.SuperAdmin {
		scope = ""
	}

	exercises, err := s.Exercises.CountActive(scope)
	if err != nil {
		return nil, err
	}
	questions, err := s.Exercises.CountQuestions(scope)
	if err != nil {
		return nil, err
	}
	themes, err := s.Themes.CountActive()
	if err != nil {
		return nil, err
	}
	students, err := s.Students.Count()
	if err != nil {
		return nil, err
	}

	return &DashboardCounts{
		ExercisesCount: exercises,
		ThemesCount:    themes,
		QuestionsCount: questions,
		StudentsCount:  students,
	}, nil
}
