package repository

import (
	"cyberhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LabRepository struct {
	DB *gorm.DB
}

func NewLabRepository(db *gorm.DB) *LabRepository {
	return &LabRepository{DB: db}
}

func (r *LabRepository) CreateTemplate(template *model.ContainerTemplate) error {
	return r.DB.Create(template).Error
}

// FindTemplateForExercise resolves the container template an exercise points
// at, or gorm.ErrRecordNotFound when the exercise has none.
func (r *LabRepository) FindTemplateForExercise(exerciseID string) (*model.ContainerTemplate, error) {
	var template model.ContainerTemplate
	err := r.DB.Table("container_templates ct").
		Select("ct.*").
		Joins("JOIN exercises e ON e.container_template_id = ct.id").
		Where("e.id = ?", exerciseID).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *LabRepository) CreateSession(session *model.LabSession) error {
	return r.DB.Create(session).Error
}

func (r *LabRepository) FindSessionByID(id string) (*model.LabSession, error) {
	var session model.LabSession
	err := r.DB.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *LabRepository) UpdateSessionStatus(id, status, connectionInfo string) error {
	updates := map[string]interface{}{"status": status}
	if connectionInfo != "" {
		updates["connection_info"] = connectionInfo
	}
	return r.DB.Model(&model.LabSession{}).Where("id = ?", id).Updates(updates).Error
}

// StopExpired marks sessions past their expiry as stopped and returns how
// many rows changed.
func (r *LabRepository) StopExpired() (int64, error) {
	result := r.DB.Model(&model.LabSession{}).
		Where("status <> ? AND expires_at <= ?", model.LabStatusStopped, time.Now()).
		Update("status", model.LabStatusStopped)
	return result.RowsAffected, result.Error
}

func (r *LabRepository) CountActiveSessions() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LabSession{}).Where("status <> ?", model.LabStatusStopped).Count(&count).Error
	return count, err
}
