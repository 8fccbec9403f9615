package model

// ChatMessage AI 助手会话消息，持久化存储，刷新/重登后历史可恢复
// swagger:model ChatMessage
type ChatMessage struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Role    string `gorm:"size:20;not null" json:"role"` // user, assistant
	Content string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
