package model

import "time"

const (
	LabStatusStarting = "starting"
	LabStatusRunning  = "running"
	LabStatusStopped  = "stopped"
)

// ContainerTemplate describes the sandbox image an exercise can spawn.
// swagger:model ContainerTemplate
type ContainerTemplate struct {
	UUIDBase
	Name      string `gorm:"size:255;not null" json:"name"`
	ImageTag  string `gorm:"size:255;not null" json:"image_tag"`
	Resources string `gorm:"size:255" json:"resources"` // cpu/memory hints passed to the orchestrator
}

func (ContainerTemplate) TableName() string {
	return "container_templates"
}

// LabSession tracks one student's sandbox. The starting -> running transition
// is reported by the external orchestrator, not performed in-process.
// swagger:model LabSession
type LabSession struct {
	UUIDBase
	ExerciseID     string    `gorm:"index;size:36;not null" json:"exercise_id"`
	StudentID      string    `gorm:"index;size:36;not null" json:"student_id"`
	Status         string    `gorm:"size:20;default:'starting'" json:"status"`
	ConnectionInfo string    `gorm:"size:512" json:"connection_info,omitempty"`
	ExpiresAt      time.Time `gorm:"index" json:"expires_at"`
}

func (LabSession) TableName() string {
	return "lab_sessions"
}
