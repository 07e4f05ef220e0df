package service

import (
	"cyberhub_backend/internal/model"
	"cyberhub_backend/internal/repository"
	"cyberhub_backend/pkg/logger"

	"go.uber.org/zap"
)

type ActivityService struct {
	Repo *repository.ActivityRepository
}

func NewActivityService(repo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{Repo: repo}
}

// Log appends an audit entry. Logging is best-effort: a failed write is
// reported to the server log and never fails the primary operation.
func (s *ActivityService) Log(userID, action, entityType, entityID, details string) {
	entry := &model.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.Repo.Create(entry); err != nil {
		logger.Log.Warn("activity log write failed",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err))
	}
}

func (s *ActivityService) List(limit int) ([]repository.ActivityRow, error) {
	return s.Repo.List(limit)
}
