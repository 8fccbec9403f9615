package model

import (
	"encoding/json"
	"time"
)

// AssessmentSubmission 一次完整的量表提交，提交时整体创建，持久化后不可变。
// 网络失败时整单重发，不存在部分提交。
// swagger:model AssessmentSubmission
type AssessmentSubmission struct {
	BaseModel
	UserID       uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	InstrumentID uint            `gorm:"index;type:bigint unsigned" json:"instrumentId"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"` // []scoring.Answer
	TotalScore   int             `json:"totalScore"`
	MaxScore     int             `json:"maxScore"`
	RiskLevel    string          `gorm:"size:50;index" json:"riskLevel"`
	SubmittedAt  time.Time       `gorm:"index" json:"submittedAt"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}

// QuestionPick 提交请求里的单题选择
type QuestionPick struct {
	QuestionID uint   `json:"questionId"`
	Label      string `json:"label"`
}
