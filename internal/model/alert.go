package model

import "time"

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// Alert 高风险预警，由高风险测评或 Awful 心情打卡自动创建，辅导员处理
// swagger:model Alert
type Alert struct {
	BaseModel
	UserID         uint          `gorm:"index;type:bigint unsigned" json:"userId"`
	User           *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Source         string        `gorm:"size:50;not null" json:"source"` // assessment, journal
	Type           string        `gorm:"size:100" json:"type"`           // High Risk Score, Crisis Mood
	Severity       AlertSeverity `gorm:"size:20;index" json:"severity"`
	Message        string        `gorm:"type:text" json:"message"`
	Acknowledged   bool          `gorm:"default:false;index" json:"acknowledged"`
	AcknowledgedBy uint          `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
}

func (Alert) TableName() string {
	return "alerts"
}
