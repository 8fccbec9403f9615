package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JournalService 日记与心情打卡。两者共用 journals 表：
// 打卡只带 mood；日记带正文，可选做一次情绪分析。创建后不可编辑。
type JournalService struct {
	JournalRepo *repository.JournalRepository
	AlertSvc    *AlertService
	AISvc       *AIService
	Logger      *zap.Logger
}

func NewJournalService(
	journalRepo *repository.JournalRepository,
	alertSvc *AlertService,
	aiSvc *AIService,
	logger *zap.Logger,
) *JournalService {
	return &JournalService{
		JournalRepo: journalRepo,
		AlertSvc:    alertSvc,
		AISvc:       aiSvc,
		Logger:      logger,
	}
}

type CheckInRequest struct {
	Mood    string   `json:"mood" binding:"required"`
	Factors []string `json:"factors"`
}

type JournalRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content" binding:"required"`
	Mood    string   `json:"mood" binding:"required"`
	Factors []string `json:"factors"`
}

// CheckIn 心情打卡。mood 必须是固定标签之一，风险等级按映射表写入，
// Awful 直接触发危机预警。
func (s *JournalService) CheckIn(userID uint, req CheckInRequest) (*model.Journal, error) {
	riskLevel, ok := util.MoodRiskLevels[req.Mood]
	if !ok {
		return nil, fmt.Errorf("未知的心情标签: %q", req.Mood)
	}

	factors, err := json.Marshal(req.Factors)
	if err != nil {
		return nil, err
	}

	j := &model.Journal{
		UserID:    userID,
		Title:     "Mood Check-in",
		Mood:      req.Mood,
		RiskLevel: riskLevel,
		Factors:   factors,
	}
	if err := s.JournalRepo.Create(j); err != nil {
		return nil, err
	}

	if riskLevel == "High" {
		s.AlertSvc.RaiseFromJournal(userID, req.Mood)
	}

	return j, nil
}

// Create 写日记。情绪分析走 AI 服务，失败只记日志，日记照常保存。
func (s *JournalService) Create(ctx context.Context, userID uint, req JournalRequest) (*model.Journal, *AIAnalysis, error) {
	riskLevel, ok := util.MoodRiskLevels[req.Mood]
	if !ok {
		return nil, nil, fmt.Errorf("未知的心情标签: %q", req.Mood)
	}

	factors, err := json.Marshal(req.Factors)
	if err != nil {
		return nil, nil, err
	}

	j := &model.Journal{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		RiskLevel: riskLevel,
		Factors:   factors,
	}
	if err := s.JournalRepo.Create(j); err != nil {
		return nil, nil, err
	}

	if riskLevel == "High" {
		s.AlertSvc.RaiseFromJournal(userID, req.Mood)
	}

	var analysis *AIAnalysis
	if s.AISvc != nil && req.Content != "" {
		analysis, err = s.AISvc.Analyze(ctx, req.Content)
		if err != nil {
			s.Logger.Warn("日记情绪分析失败", zap.Uint("userID", userID), zap.Error(err))
			analysis = nil
		}
	}

	return j, analysis, nil
}

func (s *JournalService) List(userID uint, page, limit int) ([]model.Journal, int64, error) {
	return s.JournalRepo.ListByUser(userID, page, limit)
}

func (s *JournalService) Get(id, userID uint) (*model.Journal, error) {
	j, err := s.JournalRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPermissionDenied
		}
		return nil, err
	}
	if j.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return j, nil
}

func (s *JournalService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.JournalRepo.Delete(id)
}
