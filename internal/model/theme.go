package model

type TeamType string

const (
	TeamRed  TeamType = "red"
	TeamBlue TeamType = "blue"
)

// swagger:model Theme
type Theme struct {
	UUIDBase
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Icon        string   `gorm:"size:50" json:"icon"`
	Color       string   `gorm:"size:20" json:"color"`
	TeamType    TeamType `gorm:"size:10;not null;index" json:"team_type"`
	ParentID    *string  `gorm:"size:36" json:"parent_id,omitempty"`
	OrderIndex  int      `gorm:"default:0" json:"order_index"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
}

func (Theme) TableName() string {
	return "themes"
}
