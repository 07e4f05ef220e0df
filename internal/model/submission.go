package model

import "time"

// Submission is an append-only audit record, one row per graded question.
// Rows are never updated.
// swagger:model Submission
type Submission struct {
	UUIDBase
	StudentID       string `gorm:"index;size:36;not null" json:"student_id"`
	ExerciseID      string `gorm:"index;size:36;not null" json:"exercise_id"`
	QuestionID      string `gorm:"index;size:36;not null" json:"question_id"`
	SubmittedAnswer string `gorm:"type:text" json:"submitted_answer"`
	IsCorrect       bool   `gorm:"default:false" json:"is_correct"`
	PointsEarned    int    `gorm:"default:0" json:"points_earned"`
}

func (Submission) TableName() string {
	return "submissions"
}

// ExerciseResult is the best-ever score for one (student, exercise) pair.
// Score and percentage never decrease across repeated submissions.
// swagger:model ExerciseResult
type ExerciseResult struct {
	UUIDBase
	StudentID   string    `gorm:"size:36;not null;uniqueIndex:idx_result_student_exercise" json:"student_id"`
	ExerciseID  string    `gorm:"size:36;not null;uniqueIndex:idx_result_student_exercise" json:"exercise_id"`
	Score       int       `gorm:"default:0" json:"score"`
	MaxScore    int       `gorm:"default:0" json:"max_score"`
	Percentage  float64   `gorm:"default:0" json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

func (ExerciseResult) TableName() string {
	return "exercise_results"
}
