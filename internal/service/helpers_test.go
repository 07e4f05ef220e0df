package service

import (
	"testing"
	"time"

	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	users      *repository.UserRepository
	students   *repository.StudentRepository
	themes     *repository.ThemeRepository
	exercises  *repository.ExerciseRepository
	labs       *repository.LabRepository
	activity   *ActivityService
	auth       *AuthService
	theme      *ThemeService
	exercise   *ExerciseService
	grading    *GradingService
	scoreboard *ScoreboardService
	student    *StudentService
	lab        *LabService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.UserSession{},
		&model.Student{},
		&model.Theme{},
		&model.Exercise{},
		&model.Question{},
		&model.Submission{},
		&model.ExerciseResult{},
		&model.ScoreboardEntry{},
		&model.ActivityLog{},
		&model.ContainerTemplate{},
		&model.LabSession{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Lab.SessionTTL = 2 * time.Hour
	cfg.Lab.OrchestratorKey = "test-orchestrator-key"

	env := &testEnv{db: db}
	env.users = repository.NewUserRepository(db)
	env.students = repository.NewStudentRepository(db)
	env.themes = repository.NewThemeRepository(db)
	env.exercises = repository.NewExerciseRepository(db)
	env.labs = repository.NewLabRepository(db)
	scoreboardRepo := repository.NewScoreboardRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	env.activity = NewActivityService(activityRepo)
	env.auth = NewAuthService(env.users, env.activity, cfg)
	env.theme = NewThemeService(env.themes, env.exercises, env.activity)
	env.exercise = NewExerciseService(env.exercises, env.themes, env.activity)
	env.scoreboard = NewScoreboardService(scoreboardRepo, env.students, nil)
	env.grading = NewGradingService(submissionRepo, env.exercises, env.students, env.scoreboard, db)
	env.student = NewStudentService(env.students, scoreboardRepo, db)
	env.lab = NewLabService(env.labs, env.exercises, cfg)

	return env
}

func (e *testEnv) createTheme(t *testing.T, name string, team model.TeamType) *model.Theme {
	t.Helper()
	theme := &model.Theme{Name: name, TeamType: team, IsActive: true}
	if err := e.db.Create(theme).Error; err != nil {
		t.Fatalf("create theme: %v", err)
	}
	return theme
}

func (e *testEnv) createExercise(t *testing.T, themeID string, published bool) *model.Exercise {
	t.Helper()
	exercise := &model.Exercise{
		ThemeID:     themeID,
		Title:       "test exercise",
		IsPublished: published,
		IsActive:    true,
	}
	if err := e.db.Create(exercise).Error; err != nil {
		t.Fatalf("create exercise: %v", err)
	}
	return exercise
}

func (e *testEnv) createQuestion(t *testing.T, exerciseID, answer string, points int) *model.Question {
	t.Helper()
	question := &model.Question{
		ExerciseID:    exerciseID,
		QuestionText:  "q",
		QuestionType:  model.QuestionText,
		CorrectAnswer: answer,
		Points:        points,
	}
	if err := e.db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	// PointsMax is fixed at authoring time; keep the fixture consistent.
	err := e.db.Model(&model.Exercise{}).
		Where("id = ?", exerciseID).
		Update("points_max", gorm.Expr("points_max + ?", points)).Error
	if err != nil {
		t.Fatalf("bump points_max: %v", err)
	}
	return question
}

func (e *testEnv) registerStudent(t *testing.T, code string) string {
	t.Helper()
	result, err := e.student.Register(code, code)
	if err != nil {
		t.Fatalf("register student: %v", err)
	}
	return result.ID
}
