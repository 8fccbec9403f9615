package model

import "encoding/json"

// ActivityLog 学生端行为日志（查看资源、完成任务等），供管理端分析
// swagger:model ActivityLog
type ActivityLog struct {
	BaseModel
	UserID uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	Action string          `gorm:"size:100;not null;index" json:"action"`
	Detail json.RawMessage `gorm:"type:json" json:"detail,omitempty"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
