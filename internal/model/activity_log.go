package model

// ActivityLog is an append-only audit entry tied to an admin user.
// swagger:model ActivityLog
type ActivityLog struct {
	UUIDBase
	UserID     string `gorm:"index;size:36;not null" json:"user_id"`
	Action     string `gorm:"size:50;not null" json:"action"` // login, create, update, publish, delete
	EntityType string `gorm:"size:50" json:"entity_type,omitempty"`
	EntityID   string `gorm:"size:36" json:"entity_id,omitempty"`
	Details    string `gorm:"type:text" json:"details,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
