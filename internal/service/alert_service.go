package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/util"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertService 高风险预警。预警由系统自动创建（高风险测评、Awful 打卡），
// 创建失败只记日志不向学生暴露，不能因为预警写入失败而拒绝学生的提交。
type AlertService struct {
	AlertRepo *repository.AlertRepository
	Logger    *zap.Logger
}

func NewAlertService(alertRepo *repository.AlertRepository, logger *zap.Logger) *AlertService {
	return &AlertService{
		AlertRepo: alertRepo,
		Logger:    logger,
	}
}

// RaiseFromAssessment 测评结果落入最高风险档时创建预警
func (s *AlertService) RaiseFromAssessment(userID uint, instrumentCode string, score, maxScore int, band string) {
	alert := &model.Alert{
		UserID:   userID,
		Source:   "assessment",
		Type:     "High Risk Score",
		Severity: model.SeverityHigh,
		Message:  fmt.Sprintf("%s 测评得分 %d/%d，风险等级 %s", instrumentCode, score, maxScore, band),
	}
	if err := s.AlertRepo.Create(alert); err != nil {
		s.Logger.Error("创建测评预警失败",
			zap.Uint("userID", userID),
			zap.String("instrument", instrumentCode),
			zap.Error(err))
	}
}

// RaiseFromJournal 心情打卡为 Awful 时创建危机预警
func (s *AlertService) RaiseFromJournal(userID uint, mood string) {
	alert := &model.Alert{
		UserID:   userID,
		Source:   "journal",
		Type:     "Crisis Mood",
		Severity: model.SeverityCritical,
		Message:  fmt.Sprintf("学生心情打卡为 %q，请尽快跟进", mood),
	}
	if err := s.AlertRepo.Create(alert); err != nil {
		s.Logger.Error("创建打卡预警失败",
			zap.Uint("userID", userID),
			zap.String("mood", mood),
			zap.Error(err))
	}
}

func (s *AlertService) List(page, limit int, severity string, includeAcknowledged bool) ([]model.Alert, int64, error) {
	return s.AlertRepo.List(page, limit, severity, includeAcknowledged)
}

// Acknowledge 辅导员确认处理预警，重复确认幂等
func (s *AlertService) Acknowledge(alertID, counselorID uint) (*model.Alert, error) {
	alert, err := s.AlertRepo.FindByID(alertID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAlertNotFound
		}
		return nil, err
	}

	if alert.Acknowledged {
		return alert, nil
	}

	now := time.Now()
	alert.Acknowledged = true
	alert.AcknowledgedBy = counselorID
	alert.AcknowledgedAt = &now

	if err := s.AlertRepo.Update(alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *AlertService) CountBySeverity() (map[model.AlertSeverity]int64, error) {
	return s.AlertRepo.CountBySeverity()
}
