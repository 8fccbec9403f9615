package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"encoding/json"
	"time"
)

// ActivityService 学生端行为日志，管理端看使用情况
type ActivityService struct {
	ActivityRepo *repository.ActivityRepository
}

func NewActivityService(activityRepo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{ActivityRepo: activityRepo}
}

// Record 记录一条行为，detail 可为 nil。失败静默，行为日志不影响主流程。
func (s *ActivityService) Record(userID uint, action string, detail interface{}) {
	var raw json.RawMessage
	if detail != nil {
		if data, err := json.Marshal(detail); err == nil {
			raw = data
		}
	}
	_ = s.ActivityRepo.Create(&model.ActivityLog{
		UserID: userID,
		Action: action,
		Detail: raw,
	})
}

func (s *ActivityService) ListByUser(userID uint, page, limit int) ([]model.ActivityLog, int64, error) {
	return s.ActivityRepo.ListByUser(userID, page, limit)
}

// UsageStats 近 N 天各类行为的次数统计
func (s *ActivityService) UsageStats(days int) (map[string]int64, error) {
	if days <= 0 {
		days = 7
	}
	return s.ActivityRepo.CountActions(time.Now().AddDate(0, 0, -days))
}
