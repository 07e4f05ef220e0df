package repository

import (
	"cyberhub_backend/internal/model"

	"gorm.io/gorm"
)

type ThemeRepository struct {
	DB *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{DB: db}
}

func (r *ThemeRepository) Create(theme *model.Theme) error {
	return r.DB.Create(theme).Error
}

func (r *ThemeRepository) FindActiveByID(id string) (*model.Theme, error) {
	var theme model.Theme
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&theme).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

type ThemeListRow struct {
	model.Theme
	ExerciseCount int `json:"exercise_count"`
}

// ListActive returns active themes with their published exercise counts,
// optionally narrowed to one team. The team value is always bound, never
// concatenated into the query.
func (r *ThemeRepository) ListActive(team string) ([]ThemeListRow, error) {
	query := r.DB.Table("themes t").
		Select("t.*, "+
			"(SELECT COUNT(*) FROM exercises e WHERE e.theme_id = t.id AND e.is_active = ? AND e.is_published = ?) as exercise_count",
			true, true).
		Where("t.is_active = ?", true)

	if team != "" {
		query = query.Where("t.team_type = ?", team)
	}

	var rows []ThemeListRow
	err := query.Order("t.order_index").Scan(&rows).Error
	return rows, err
}

func (r *ThemeRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Theme{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
