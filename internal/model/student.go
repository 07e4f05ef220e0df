package model

import "time"

// Student identities are self-registered with a client-chosen code. Rows are
// only ever mutated by the result aggregator and never deleted.
// swagger:model Student
type Student struct {
	UUIDBase
	StudentCode        string     `gorm:"size:100;uniqueIndex;not null" json:"student_code"`
	DisplayName        string     `gorm:"size:100" json:"display_name"`
	TotalPoints        int        `gorm:"default:0" json:"total_points"`
	ExercisesCompleted int        `gorm:"default:0" json:"exercises_completed"`
	LastActiveAt       *time.Time `json:"last_active_at,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
