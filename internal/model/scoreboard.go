package model

// ScoreboardEntry is the denormalized per-student aggregate used for ranking
// display. Rank is a dense competition ranking: 1 + count of strictly
// higher-scoring entries, ties share the same rank.
// swagger:model ScoreboardEntry
type ScoreboardEntry struct {
	UUIDBase
	StudentID          string `gorm:"size:36;not null;uniqueIndex" json:"student_id"`
	DisplayName        string `gorm:"size:100" json:"display_name"`
	TotalPoints        int    `gorm:"default:0;index" json:"total_points"`
	RedTeamPoints      int    `gorm:"default:0" json:"red_team_points"`
	BlueTeamPoints     int    `gorm:"default:0" json:"blue_team_points"`
	ExercisesCompleted int    `gorm:"default:0" json:"exercises_completed"`
	Rank               int    `gorm:"default:0" json:"rank"`
}

func (ScoreboardEntry) TableName() string {
	return "scoreboard"
}
