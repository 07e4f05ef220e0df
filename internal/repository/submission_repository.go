package repository

import (
	"cyberhub_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(tx *gorm.DB, submission *model.Submission) error {
	return tx.Create(submission).Error
}

// UpsertBestResult keeps the greater of the stored and the new score and
// percentage for the (student, exercise) pair. The completion timestamp is
// refreshed even when the score did not improve.
func (r *SubmissionRepository) UpsertBestResult(tx *gorm.DB, result *model.ExerciseResult) error {
	now := time.Now()

	var existing model.ExerciseResult
	err := tx.Where("student_id = ? AND exercise_id = ?", result.StudentID, result.ExerciseID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.CompletedAt = now
		return tx.Create(result).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"completed_at": now,
	}
	if result.Score > existing.Score {
		updates["score"] = result.Score
	}
	if result.Percentage > existing.Percentage {
		updates["percentage"] = result.Percentage
	}

	return tx.Model(&model.ExerciseResult{}).Where("id = ?", existing.ID).Updates(updates).Error
}

func (r *SubmissionRepository) FindResult(studentID, exerciseID string) (*model.ExerciseResult, error) {
	var result model.ExerciseResult
	err := r.DB.Where("student_id = ? AND exercise_id = ?", studentID, exerciseID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

