package model

import "time"

// WellnessTask 每日健康计划任务，由 AI 生成或手动添加
// swagger:model WellnessTask
type WellnessTask struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	Date        string     `gorm:"size:10;index:idx_user_plan_date" json:"date"` // YYYY-MM-DD
	Category    string     `gorm:"size:100" json:"category"`                     // Mindfulness, Physical, Social...
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Source      string     `gorm:"size:20;default:'ai'" json:"source"` // ai, manual
}

func (WellnessTask) TableName() string {
	return "wellness_tasks"
}
