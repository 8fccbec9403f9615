package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/scoring"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 今日健康指数的展示标签分界
const (
	wellnessExcellent = 80
	wellnessGood      = 50
)

const trendCacheTTL = 10 * time.Minute

// DashboardService 学生仪表盘与辅导员总览。
// 趋势序列由打卡和测评两路信号合成，结果短期缓存在 Redis，
// 新的打卡/提交在 TTL 内体现即可，不追求强一致。
type DashboardService struct {
	JournalRepo    *repository.JournalRepository
	AssessmentRepo *repository.AssessmentRepository
	AlertRepo      *repository.AlertRepository
	SessionRepo    *repository.SessionRepository
	UserRepo       *repository.UserRepository
	Redis          *redis.Client
}

func NewDashboardService(
	journalRepo *repository.JournalRepository,
	assessmentRepo *repository.AssessmentRepository,
	alertRepo *repository.AlertRepository,
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *DashboardService {
	return &DashboardService{
		JournalRepo:    journalRepo,
		AssessmentRepo: assessmentRepo,
		AlertRepo:      alertRepo,
		SessionRepo:    sessionRepo,
		UserRepo:       userRepo,
		Redis:          rdb,
	}
}

type TrendResponse struct {
	Days       []scoring.DailyWellness `json:"days"`
	TodayScore int                     `json:"todayScore"`
	TodayLabel string                  `json:"todayLabel"`
}

type StudentDashboard struct {
	Trend            *TrendResponse              `json:"trend"`
	LatestMood       string                      `json:"latestMood,omitempty"`
	UpcomingSessions []model.CounselingSession   `json:"upcomingSessions"`
	RecentSubmission *model.AssessmentSubmission `json:"recentSubmission,omitempty"`
}

// Trend 最近 windowDays 天的每日健康分序列，默认 7 天
func (s *DashboardService) Trend(ctx context.Context, userID uint, windowDays int) (*TrendResponse, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	cacheKey := fmt.Sprintf("wellness:trend:%d:%d", userID, windowDays)
	if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var cached TrendResponse
		if json.Unmarshal([]byte(val), &cached) == nil {
			return &cached, nil
		}
	}

	now := time.Now()
	since := now.AddDate(0, 0, -(windowDays - 1)).Truncate(24 * time.Hour)

	journals, err := s.JournalRepo.ListSince(userID, since)
	if err != nil {
		return nil, err
	}
	submissions, err := s.AssessmentRepo.ListSince(userID, since)
	if err != nil {
		return nil, err
	}

	moods := make([]scoring.MoodSignal, 0, len(journals))
	for _, j := range journals {
		moods = append(moods, scoring.MoodSignal{At: j.CreatedAt, Mood: j.Mood})
	}
	scores := make([]scoring.ScoreSignal, 0, len(submissions))
	for _, sub := range submissions {
		scores = append(scores, scoring.ScoreSignal{
			At:       sub.SubmittedAt,
			Score:    sub.TotalScore,
			MaxScore: sub.MaxScore,
		})
	}

	days := scoring.AggregateTrend(moods, scores, now, windowDays)
	today := days[len(days)-1].Score

	resp := &TrendResponse{
		Days:       days,
		TodayScore: today,
		TodayLabel: wellnessLabel(today),
	}

	if data, err := json.Marshal(resp); err == nil {
		s.Redis.Set(ctx, cacheKey, data, trendCacheTTL)
	}

	return resp, nil
}

// InvalidateTrend 打卡或提交后清掉缓存，下一次读取重算
func (s *DashboardService) InvalidateTrend(ctx context.Context, userID uint) {
	for _, w := range []int{7, 14, 30} {
		s.Redis.Del(ctx, fmt.Sprintf("wellness:trend:%d:%d", userID, w))
	}
}

func wellnessLabel(score int) string {
	switch {
	case score >= wellnessExcellent:
		return "Excellent"
	case score >= wellnessGood:
		return "Good"
	default:
		return "Needs Attention"
	}
}

// StudentOverview 学生仪表盘聚合：趋势 + 最近心情 + 即将到来的预约 + 最近一次测评
func (s *DashboardService) StudentOverview(ctx context.Context, userID uint) (*StudentDashboard, error) {
	trend, err := s.Trend(ctx, userID, 7)
	if err != nil {
		return nil, err
	}

	dashboard := &StudentDashboard{Trend: trend}

	if latest, err := s.JournalRepo.LatestByUser(userID); err == nil {
		dashboard.LatestMood = latest.Mood
	}

	sessions, err := s.SessionRepo.ListByUser(userID, true)
	if err != nil {
		return nil, err
	}
	dashboard.UpcomingSessions = sessions

	subs, _, err := s.AssessmentRepo.ListByUser(userID, 0, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(subs) > 0 {
		dashboard.RecentSubmission = &subs[0]
	}

	return dashboard, nil
}

type CounselorOverview struct {
	StudentCount  int64                         `json:"studentCount"`
	RiskCounts    map[string]int64              `json:"riskCounts"`
	AlertCounts   map[model.AlertSeverity]int64 `json:"alertCounts"`
	TodaySessions []model.CounselingSession     `json:"todaySessions"`
}

// Overview 辅导员/管理员总览：近 30 天风险分布、未处理预警、今日预约
func (s *DashboardService) Overview(counselorID uint) (*CounselorOverview, error) {
	_, total, err := s.UserRepo.ListStudents(1, 1, "")
	if err != nil {
		return nil, err
	}

	riskCounts, err := s.AssessmentRepo.CountByRiskLevel(time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	alertCounts, err := s.AlertRepo.CountBySeverity()
	if err != nil {
		return nil, err
	}

	dayStart := time.Now().Truncate(24 * time.Hour)
	sessions, err := s.SessionRepo.ListByCounselor(counselorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &CounselorOverview{
		StudentCount:  total,
		RiskCounts:    riskCounts,
		AlertCounts:   alertCounts,
		TodaySessions: sessions,
	}, nil
}
