package model

import "encoding/json"

// swagger:model Exercise
type Exercise struct {
	UUIDBase
	ThemeID             string          `gorm:"index;size:36;not null" json:"theme_id"`
	Title               string          `gorm:"size:255;not null" json:"title"`
	Description         string          `gorm:"type:text" json:"description"`
	Difficulty          string          `gorm:"size:50;default:'beginner'" json:"difficulty"`
	DurationMinutes     int             `gorm:"default:60" json:"duration_minutes"`
	PointsMax           int             `gorm:"default:0" json:"points_max"` // sum of question points, fixed at save time
	CourseContent       string          `gorm:"type:text" json:"course_content"`
	CourseBlocks        json.RawMessage `gorm:"type:json" json:"course_blocks"` // ordered typed blocks from the content editor
	ContainerTemplateID *string         `gorm:"size:36" json:"container_template_id,omitempty"`
	IsPublished         bool            `gorm:"default:false" json:"is_published"`
	IsActive            bool            `gorm:"default:true;index" json:"is_active"` // soft delete flag
	OrderIndex          int             `gorm:"default:0" json:"order_index"`
	CreatedBy           string          `gorm:"index;size:36" json:"created_by"`
	UpdatedBy           string          `gorm:"size:36" json:"updated_by"`
}

func (Exercise) TableName() string {
	return "exercises"
}
