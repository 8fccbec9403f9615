package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 文件上传相关常量
const (
	MimeAudio       = "audio/"
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedMediaExtensions = []string{".mp3", ".m4a", ".wav", ".ogg", ".mp4", ".mov", ".webm"}
)

// 心情打卡标签，与 scoring.MoodScores 的键保持一致
var MoodLabels = []string{"Great", "Good", "Okay", "Not Good", "Awful"}

// MoodRiskLevels 心情到风险等级的映射，打卡时写入 journals.risk_level
var MoodRiskLevels = map[string]string{
	"Great":    "Low",
	"Good":     "Low",
	"Okay":     "Low",
	"Not Good": "Medium",
	"Awful":    "High",
}
