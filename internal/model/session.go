package model

import "time"

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionConfirmed SessionStatus = "confirmed"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// CounselingSession 学生与辅导员的预约
// swagger:model CounselingSession
type CounselingSession struct {
	UUIDBase
	UserID      uint          `gorm:"index;type:bigint unsigned" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CounselorID uint          `gorm:"index;type:bigint unsigned" json:"counselorId"`
	Counselor   *User         `gorm:"foreignKey:CounselorID" json:"counselor,omitempty"`
	ScheduledAt time.Time     `gorm:"index;not null" json:"scheduledAt"`
	Duration    int           `gorm:"default:30" json:"duration"` // 分钟
	Status      SessionStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Topic       string        `gorm:"size:255" json:"topic"`
	Notes       string        `gorm:"type:text" json:"notes"` // 辅导员会后记录
}

func (CounselingSession) TableName() string {
	return "sessions"
}
