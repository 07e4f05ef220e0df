package repository

import (
	"cyberhub_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ScoreboardRepository struct {
	DB *gorm.DB
}

func NewScoreboardRepository(db *gorm.DB) *ScoreboardRepository {
	return &ScoreboardRepository{DB: db}
}

type TeamPointsRow struct {
	RedPoints          int
	BluePoints         int
	TotalPoints        int
	ExercisesCompleted int
}

// SumTeamPoints joins results through exercises to themes and splits the
// student's score by team affiliation.
func (r *ScoreboardRepository) SumTeamPoints(tx *gorm.DB, studentID string) (*TeamPointsRow, error) {
	var row TeamPointsRow
	err := tx.Table("exercise_results er").
		Select("COALESCE(SUM(CASE WHEN t.team_type = ? THEN er.score ELSE 0 END), 0) as red_points, "+
			"COALESCE(SUM(CASE WHEN t.team_type = ? THEN er.score ELSE 0 END), 0) as blue_points, "+
			"COALESCE(SUM(er.score), 0) as total_points, "+
			"COUNT(er.id) as exercises_completed",
			model.TeamRed, model.TeamBlue).
		Joins("JOIN exercises e ON er.exercise_id = e.id").
		Joins("JOIN themes t ON e.theme_id = t.id").
		Where("er.student_id = ?", studentID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert inserts or updates the scoreboard row keyed by student id.
func (r *ScoreboardRepository) Upsert(tx *gorm.DB, entry *model.ScoreboardEntry) error {
	var existing model.ScoreboardEntry
	err := tx.Where("student_id = ?", entry.StudentID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(entry).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&model.ScoreboardEntry{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"display_name":        entry.DisplayName,
		"total_points":        entry.TotalPoints,
		"red_team_points":     entry.RedTeamPoints,
		"blue_team_points":    entry.BlueTeamPoints,
		"exercises_completed": entry.ExercisesCompleted,
	}).Error
}

type scoreboardTotal struct {
	ID          string
	TotalPoints int
}

// RecomputeRanks rewrites rank for every row as a dense competition ranking:
// 1 + count of rows with strictly greater total points, ties sharing a rank.
// One read plus one write per distinct total, instead of a correlated
// self-UPDATE.
func (r *ScoreboardRepository) RecomputeRanks(tx *gorm.DB) error {
	var totals []scoreboardTotal
	if err := tx.Model(&model.ScoreboardEntry{}).
		Select("id, total_points").
		Order("total_points DESC").
		Scan(&totals).Error; err != nil {
		return err
	}

	rank := 0
	prevPoints := -1
	for i, row := range totals {
		if row.TotalPoints != prevPoints {
			rank = i + 1
			prevPoints = row.TotalPoints
		}
		if err := tx.Model(&model.ScoreboardEntry{}).Where("id = ?", row.ID).
			Update("rank", rank).Error; err != nil {
			return err
		}
	}
	return nil
}

// List returns scoreboard entries ordered by the requested team's points, or
// by total points by default.
func (r *ScoreboardRepository) List(team string, limit int) ([]model.ScoreboardEntry, error) {
	orderBy := "total_points DESC"
	switch team {
	case string(model.TeamRed):
		orderBy = "red_team_points DESC"
	case string(model.TeamBlue):
		orderBy = "blue_team_points DESC"
	}

	if limit <= 0 {
		limit = 50
	}

	var entries []model.ScoreboardEntry
	err := r.DB.Order(orderBy).Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *ScoreboardRepository) FindByStudent(studentID string) (*model.ScoreboardEntry, error) {
	var entry model.ScoreboardEntry
	err := r.DB.Where("student_id = ?", studentID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ScoreboardRepository) Create(tx *gorm.DB, entry *model.ScoreboardEntry) error {
	return tx.Create(entry).Error
}
