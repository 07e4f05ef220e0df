package repository

import (
	"cyberhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(tx *gorm.DB, student *model.Student) error {
	return tx.Create(student).Error
}

func (r *StudentRepository) FindByCode(code string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("student_code = ?", code).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByID(id string) (*model.Student, error) {
	var student model.Student
	err := r.DB.First(&student, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// RecomputeAggregates rebuilds the student's lifetime totals from their result
// rows. Always a full re-aggregation so out-of-band edits never leave the
// totals stale.
func (r *StudentRepository) RecomputeAggregates(tx *gorm.DB, studentID string) error {
	return tx.Model(&model.Student{}).Where("id = ?", studentID).Updates(map[string]interface{}{
		"total_points":        gorm.Expr("(SELECT COALESCE(SUM(score), 0) FROM exercise_results WHERE student_id = ?)", studentID),
		"exercises_completed": gorm.Expr("(SELECT COUNT(*) FROM exercise_results WHERE student_id = ?)", studentID),
		"last_active_at":      time.Now(),
	}).Error
}

type StudentOverviewRow struct {
	ID                 string     `json:"id"`
	StudentCode        string     `json:"student_code"`
	DisplayName        string     `json:"display_name"`
	TotalPoints        int        `json:"total_points"`
	ExercisesCompleted int        `json:"exercises_completed"`
	LastActiveAt       *time.Time `json:"last_active_at"`
	RedTeamPoints      int        `json:"red_team_points"`
	BlueTeamPoints     int        `json:"blue_team_points"`
	Rank               int        `json:"rank"`
}

func (r *StudentRepository) ListWithScoreboard() ([]StudentOverviewRow, error) {
	var rows []StudentOverviewRow
	err := r.DB.Table("students s").
		Select("s.id, s.student_code, s.display_name, s.total_points, s.exercises_completed, s.last_active_at, " +
			"sb.red_team_points, sb.blue_team_points, sb.rank").
		Joins("LEFT JOIN scoreboard sb ON s.id = sb.student_id").
		Order("s.total_points DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *StudentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Student{}).Count(&count).Error
	return count, err
}
