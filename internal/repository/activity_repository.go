package repository

import (
	"cyberhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(entry *model.ActivityLog) error {
	return r.DB.Create(entry).Error
}

type ActivityRow struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
	UserName   string    `json:"user_name"`
}

func (r *ActivityRepository) List(limit int) ([]ActivityRow, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []ActivityRow
	err := r.DB.Table("activity_logs al").
		Select("al.id, al.action, al.entity_type, al.entity_id, al.details, al.created_at, u.display_name as user_name").
		Joins("JOIN users u ON al.user_id = u.id").
		Order("al.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
