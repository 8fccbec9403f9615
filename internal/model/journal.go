package model

import "encoding/json"

// Journal 日记与心情打卡共用一张表：打卡只有 mood 和生成的摘要，
// 自由书写的日记带完整正文。创建后不再编辑。
// swagger:model Journal
type Journal struct {
	BaseModel
	UserID    uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	Title     string          `gorm:"size:255" json:"title"`
	Content   string          `gorm:"type:text" json:"content"`
	Mood      string          `gorm:"size:20;index" json:"mood"` // Great, Good, Okay, Not Good, Awful
	RiskLevel string          `gorm:"size:20" json:"riskLevel"`  // Low, Medium, High
	Factors   json.RawMessage `gorm:"type:json" json:"factors"`  // 影响因素标签，如 Sleep, Exams
}

func (Journal) TableName() string {
	return "journals"
}
