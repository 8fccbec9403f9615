package model

import "encoding/json"

// Instrument 量表模板（PHQ-9、GAD-7、压力自评等），由管理员维护，学生只读
// swagger:model Instrument
type Instrument struct {
	BaseModel
	Code        string                `gorm:"size:50;unique;not null" json:"code"` // PHQ-9, GAD-7, STRESS
	Title       string                `gorm:"size:255;not null" json:"title"`
	Description string                `gorm:"type:text" json:"description"`
	IsPublished bool                  `gorm:"default:false" json:"isPublished"`
	Questions   []InstrumentQuestion  `gorm:"foreignKey:InstrumentID" json:"questions,omitempty"`
	Thresholds  []InstrumentThreshold `gorm:"foreignKey:InstrumentID" json:"thresholds,omitempty"`
}

func (Instrument) TableName() string {
	return "instruments"
}

// InstrumentQuestion 量表题目，选项与分值存为 JSON：[{label, value}]
// swagger:model InstrumentQuestion
type InstrumentQuestion struct {
	BaseModel
	InstrumentID uint            `gorm:"index;type:bigint unsigned" json:"instrumentId"`
	Content      string          `gorm:"type:text;not null" json:"content"`
	Options      json.RawMessage `gorm:"type:json" json:"options"`
	Required     bool            `gorm:"default:true" json:"required"`
	Order        int             `gorm:"default:0" json:"order"`
}

func (InstrumentQuestion) TableName() string {
	return "instrument_questions"
}

// InstrumentThreshold 风险分级阈值行，闭区间 [MinScore, MaxScore]
// swagger:model InstrumentThreshold
type InstrumentThreshold struct {
	BaseModel
	InstrumentID uint   `gorm:"index;type:bigint unsigned" json:"instrumentId"`
	Band         string `gorm:"size:50;not null" json:"band"`
	MinScore     int    `gorm:"not null" json:"minScore"`
	MaxScore     int    `gorm:"not null" json:"maxScore"`
	Order        int    `gorm:"default:0" json:"order"`
}

func (InstrumentThreshold) TableName() string {
	return "instrument_thresholds"
}
