package model

// Resource 自助资源：文章、冥想音频、减压视频等
// swagger:model Resource
type Resource struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Category    string `gorm:"size:100;index" json:"category"` // anxiety, sleep, mindfulness...
	Kind        string `gorm:"size:20;not null" json:"kind"`   // article, audio, video
	Description string `gorm:"type:text" json:"description"`
	Content     string `gorm:"type:longtext" json:"content"` // article 正文
	URL         string `gorm:"size:512" json:"url"`          // audio/video 文件地址
	Duration    int    `gorm:"default:0" json:"duration"`    // 媒体时长（秒），上传时探测
	IsPublished bool   `gorm:"default:false" json:"isPublished"`
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Resource) TableName() string {
	return "resources"
}
