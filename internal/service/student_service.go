package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type StudentService struct {
	Students   *repository.StudentRepository
	Scoreboard *repository.ScoreboardRepository
	DB         *gorm.DB
}

func NewStudentService(students *repository.StudentRepository, scoreboard *repository.ScoreboardRepository, db *gorm.DB) *StudentService {
	return &StudentService{Students: students, Scoreboard: scoreboard, DB: db}
}

type RegisterResult struct {
	ID       string `json:"id"`
	Existing bool   `json:"existing"`
}

// Register is idempotent on the student code: a known code returns the
// existing id and never creates a second scoreboard row.
func (s *StudentService) Register(studentCode, displayName string) (*RegisterResult, error) {
	if studentCode == "" {
		return nil, fmt.Errorf("%w: student_code is required", util.ErrInvalidRequest)
	}

	existing, err := s.Students.FindByCode(studentCode)
	if err == nil {
		return &RegisterResult{ID: existing.ID, Existing: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if displayName == "" {
		displayName = studentCode
	}

	student := &model.Student{
		StudentCode: studentCode,
		DisplayName: displayName,
	}

	// The student and their scoreboard row are born together or not at all;
	// a half-registered student would be invisible on the scoreboard until
	// their first submission.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Students.Create(tx, student); err != nil {
			return err
		}
		entry := &model.ScoreboardEntry{
			StudentID:   student.ID,
			DisplayName: displayName,
		}
		return s.Scoreboard.Create(tx, entry)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResult{ID: student.ID}, nil
}

type StudentStats struct {
	ID                 string `json:"id"`
	StudentCode        string `json:"student_code"`
	DisplayName        string `json:"display_name"`
	TotalPoints        int    `json:"total_points"`
	ExercisesCompleted int    `json:"exercises_completed"`
	Rank               int    `json:"rank"`
	RedTeamPoints      int    `json:"red_team_points"`
	BlueTeamPoints     int    `json:"blue_team_points"`
}

func (s *StudentService) StatsByCode(studentCode string) (*StudentStats, error) {
	student, err := s.Students.FindByCode(studentCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	stats := &StudentStats{
		ID:                 student.ID,
		StudentCode:        student.StudentCode,
		DisplayName:        student.DisplayName,
		TotalPoints:        student.TotalPoints,
		ExercisesCompleted: student.ExercisesCompleted,
	}

	entry, err := s.Scoreboard.FindByStudent(student.ID)
	if err == nil {
		stats.Rank = entry.Rank
		stats.RedTeamPoints = entry.RedTeamPoints
		stats.BlueTeamPoints = entry.BlueTeamPoints
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}

func (s *StudentService) AdminList() ([]repository.StudentOverviewRow, error) {
	return s.Students.ListWithScoreboard()
}
