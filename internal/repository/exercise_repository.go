package repository

import (
	"cyberhub_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

// FindByID returns the exercise regardless of flags. Admin lookups still see
// soft-deleted rows.
func (r *ExerciseRepository) FindByID(id string) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// FindPublishedByID is the public lookup: active and published rows only.
func (r *ExerciseRepository) FindPublishedByID(id string) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.Where("id = ? AND is_active = ? AND is_published = ?", id, true, true).First(&exercise).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

type PublicExerciseRow struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Difficulty      string `json:"difficulty"`
	DurationMinutes int    `json:"duration_minutes"`
	PointsMax       int    `json:"points_max"`
	OrderIndex      int    `json:"order_index"`
	HasLab          bool   `json:"has_lab"`
}

func (r *ExerciseRepository) ListPublishedByTheme(themeID string) ([]PublicExerciseRow, error) {
	var rows []PublicExerciseRow
	err := r.DB.Table("exercises").
		Select("id, title, description, difficulty, duration_minutes, points_max, order_index, " +
			"container_template_id IS NOT NULL as has_lab").
		Where("theme_id = ? AND is_active = ? AND is_published = ?", themeID, true, true).
		Order("order_index").
		Scan(&rows).Error
	return rows, err
}

// CreateWithQuestions inserts the exercise and its full question set in one
// transaction.
func (r *ExerciseRepository) CreateWithQuestions(exercise *model.Exercise, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exercise).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExerciseID = exercise.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithQuestions saves the exercise and replaces its question set
// wholesale: prior rows are deleted and the new set reinserted, atomically.
func (r *ExerciseRepository) UpdateWithQuestions(exercise *model.Exercise, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(exercise).Error; err != nil {
			return err
		}
		if err := tx.Where("exercise_id = ?", exercise.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ExerciseID = exercise.ID
			questions[i].ID = ""
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExerciseRepository) SoftDelete(id, updatedBy string) error {
	return r.DB.Model(&model.Exercise{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_by": updatedBy,
		"updated_at": time.Now(),
	}).Error
}

func (r *ExerciseRepository) ListQuestions(exerciseID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("exercise_id = ?", exerciseID).Order("order_index").Find(&questions).Error
	return questions, err
}

type AdminExerciseFilter struct {
	ThemeID     string
	Team        string
	IsPublished *bool
	CreatedBy   string
	Limit       int
}

type AdminExerciseRow struct {
	model.Exercise
	ThemeName     string         `json:"theme_name"`
	TeamType      model.TeamType `json:"team_type"`
	CreatorName   string         `json:"creator_name"`
	QuestionCount int            `json:"question_count"`
}

func (r *ExerciseRepository) AdminList(filter AdminExerciseFilter) ([]AdminExerciseRow, error) {
	query := r.DB.Table("exercises e").
		Select("e.*, t.name as theme_name, t.team_type, u.display_name as creator_name, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.exercise_id = e.id) as question_count").
		Joins("JOIN themes t ON e.theme_id = t.id").
		Joins("LEFT JOIN users u ON e.created_by = u.id").
		Where("e.is_active = ?", true)

	if filter.CreatedBy != "" {
		query = query.Where("e.created_by = ?", filter.CreatedBy)
	}
	if filter.ThemeID != "" {
		query = query.Where("e.theme_id = ?", filter.ThemeID)
	}
	if filter.Team != "" {
		query = query.Where("t.team_type = ?", filter.Team)
	}
	if filter.IsPublished != nil {
		query = query.Where("e.is_published = ?", *filter.IsPublished)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var rows []AdminExerciseRow
	err := query.Order("e.updated_at DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

// CountActive counts active exercises, scoped to one creator when createdBy is set.
func (r *ExerciseRepository) CountActive(createdBy string) (int64, error) {
	query := r.DB.Model(&model.Exercise{}).Where("is_active = ?", true)
	if createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *ExerciseRepository) CountQuestions(createdBy string) (int64, error) {
	query := r.DB.Model(&model.Question{})
	if createdBy != "" {
		query = query.Joins("JOIN exercises e ON questions.exercise_id = e.id").Where("e.created_by = ?", createdBy)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
