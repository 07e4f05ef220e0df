package service

import (
	"cyberhub_backend/internal/config"
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/internal/util"
	"cyberhub_backend/pkg/logger"
	"cyberhub_backend/pkg/monitoring"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LabService struct {
	Labs      *repository.LabRepository
	Exercises *repository.ExerciseRepository
	Config    *config.Config
}

func NewLabService(labs *repository.LabRepository, exercises *repository.ExerciseRepository, cfg *config.Config) *LabService {
	return &LabService{Labs: labs, Exercises: exercises, Config: cfg}
}

// Start opens a lab session for a student. The session is created in the
// "starting" state; the external orchestrator is expected to spawn the
// container and report the running transition through UpdateStatus.
func (s *LabService) Start(studentID, exerciseID string) (*model.LabSession, error) {
	if exerciseID == "" {
		return nil, fmt.Errorf("%w: exercise_id is required", util.ErrInvalidRequest)
	}

	_, err := s.Labs.FindTemplateForExercise(exerciseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoLab
	}
	if err != nil {
		return nil, err
	}

	session := &model.LabSession{
		ExerciseID: exerciseID,
		StudentID:  studentID,
		Status:     model.LabStatusStarting,
		ExpiresAt:  time.Now().Add(s.Config.Lab.SessionTTL),
	}
	if err := s.Labs.CreateSession(session); err != nil {
		return nil, err
	}

	monitoring.LabSessionGauge.Inc()
	return session, nil
}

func (s *LabService) Get(sessionID string) (*model.LabSession, error) {
	session, err := s.Labs.FindSessionByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	return session, err
}

func (s *LabService) Stop(sessionID string) error {
	session, err := s.Labs.FindSessionByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	if err != nil {
		return err
	}

	if session.Status != model.LabStatusStopped {
		monitoring.LabSessionGauge.Dec()
	}
	return s.Labs.UpdateSessionStatus(sessionID, model.LabStatusStopped, "")
}

// UpdateStatus is the orchestrator callback. Only the known lifecycle states
// are accepted.
func (s *LabService) UpdateStatus(sessionID, status, connectionInfo string) (*model.LabSession, error) {
	switch status {
	case model.LabStatusStarting, model.LabStatusRunning, model.LabStatusStopped:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", util.ErrInvalidRequest, status)
	}

	session, err := s.Labs.FindSessionByID(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Labs.UpdateSessionStatus(sessionID, status, connectionInfo); err != nil {
		return nil, err
	}

	if status == model.LabStatusStopped && session.Status != model.LabStatusStopped {
		monitoring.LabSessionGauge.Dec()
	}

	session.Status = status
	if connectionInfo != "" {
		session.ConnectionInfo = connectionInfo
	}
	return session, nil
}

// SyncSessionGauge resets the active-session gauge from the database. Called
// once at boot: the gauge restarts at zero while sessions may still be live,
// and decrements against a stale zero would drive it negative.
func (s *LabService) SyncSessionGauge() {
	count, err := s.Labs.CountActiveSessions()
	if err != nil {
		logger.Log.Error("lab session count failed", zap.Error(err))
		return
	}
	monitoring.LabSessionGauge.Set(float64(count))
}

// ReapExpired stops sessions past their expiry. Called periodically from the
// app's background loop.
func (s *LabService) ReapExpired() {
	stopped, err := s.Labs.StopExpired()
	if err != nil {
		logger.Log.Error("lab session reaping failed", zap.Error(err))
		return
	}
	if stopped > 0 {
		monitoring.LabSessionGauge.Sub(float64(stopped))
		logger.Log.Info("expired lab sessions stopped", zap.Int64("count", stopped))
	}
}
