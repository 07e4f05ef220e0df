package service

import (
	"context"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"cyberhub_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const scoreboardCacheTTL = 30 * time.Second

type ScoreboardService struct {
	Repo     *repository.ScoreboardRepository
	Students *repository.StudentRepository
	Redis    *redis.Client
}

func NewScoreboardService(repo *repository.ScoreboardRepository, students *repository.StudentRepository, rdb *redis.Client) *ScoreboardService {
	return &ScoreboardService{Repo: repo, Students: students, Redis: rdb}
}

// RefreshStudent recomputes one student's team-split totals, upserts their
// scoreboard row and rewrites every row's rank. Runs inside the caller's
// transaction so a scoring event is all-or-nothing.
func (s *ScoreboardService) RefreshStudent(tx *gorm.DB, studentID string) error {
	points, err := s.Repo.SumTeamPoints(tx, studentID)
	if err != nil {
		return err
	}

	var student model.Student
	if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
		return err
	}

	entry := &model.ScoreboardEntry{
		StudentID:          studentID,
		DisplayName:        student.DisplayName,
		TotalPoints:        points.TotalPoints,
		RedTeamPoints:      points.RedPoints,
		BlueTeamPoints:     points.BluePoints,
		ExercisesCompleted: points.ExercisesCompleted,
	}
	if err := s.Repo.Upsert(tx, entry); err != nil {
		return err
	}

	return s.Repo.RecomputeRanks(tx)
}

func (s *ScoreboardService) List(team string, limit int) ([]model.ScoreboardEntry, error) {
	// Validated before it becomes a cache key: arbitrary client strings must
	// not mint unbounded Redis keys.
	if team != "" && team != string(model.TeamRed) && team != string(model.TeamBlue) {
		return nil, fmt.Errorf("%w: unknown team %q", util.ErrInvalidRequest, team)
	}

	cacheKey := fmt.Sprintf("scoreboard:%s:%d", team, limit)

	if s.Redis != nil {
		cached, err := s.Redis.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var entries []model.ScoreboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.Repo.List(team, limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(context.Background(), cacheKey, payload, scoreboardCacheTTL)
		}
	}

	return entries, nil
}

// InvalidateCache drops cached scoreboard pages after a scoring event.
func (s *ScoreboardService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.Redis.Keys(ctx, "scoreboard:*").Result()
	if err != nil {
		logger.Log.Warn("scoreboard cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		s.Redis.Del(ctx, keys...)
	}
}
