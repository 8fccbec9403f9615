package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/util"
	"context"
	"time"

	"go.uber.org/zap"
)

// WellnessService 每日健康计划。计划按天生成，优先走 AI：
// 用最近一次打卡心情和日记摘要换取个性化任务；推理服务不可用时
// 回退到固定的保底任务，学生端永远能拿到一份当日计划。
type WellnessService struct {
	TaskRepo    *repository.WellnessTaskRepository
	JournalRepo *repository.JournalRepository
	AISvc       *AIService
	Logger      *zap.Logger
}

func NewWellnessService(
	taskRepo *repository.WellnessTaskRepository,
	journalRepo *repository.JournalRepository,
	aiSvc *AIService,
	logger *zap.Logger,
) *WellnessService {
	return &WellnessService{
		TaskRepo:    taskRepo,
		JournalRepo: journalRepo,
		AISvc:       aiSvc,
		Logger:      logger,
	}
}

// 推理服务不可用时的保底计划
var fallbackPlanTasks = []AIPlanTask{
	{Category: "Mindfulness", Title: "5 分钟正念呼吸", Description: "找一个安静的地方，专注呼吸五分钟"},
	{Category: "Physical", Title: "散步 15 分钟", Description: "离开宿舍或教室，在校园里走一走"},
	{Category: "Social", Title: "联系一位朋友", Description: "给朋友或家人发条消息，聊聊近况"},
}

const journalSummaryLimit = 200

// TodayPlan 获取当日计划，没有则生成一份
func (s *WellnessService) TodayPlan(ctx context.Context, userID uint) ([]model.WellnessTask, error) {
	date := time.Now().Format(util.DateFormat)

	tasks, err := s.TaskRepo.ListByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if len(tasks) > 0 {
		return tasks, nil
	}

	return s.generate(ctx, userID, date)
}

// Regenerate 丢弃当日已有任务重新生成（保留已完成的）
func (s *WellnessService) Regenerate(ctx context.Context, userID uint) ([]model.WellnessTask, error) {
	date := time.Now().Format(util.DateFormat)
	return s.generate(ctx, userID, date)
}

func (s *WellnessService) generate(ctx context.Context, userID uint, date string) ([]model.WellnessTask, error) {
	mood := "Okay"
	summary := ""
	if latest, err := s.JournalRepo.LatestByUser(userID); err == nil {
		mood = latest.Mood
		summary = latest.Content
		if len([]rune(summary)) > journalSummaryLimit {
			summary = string([]rune(summary)[:journalSummaryLimit])
		}
	}

	source := "ai"
	planTasks, err := s.AISvc.GeneratePlan(ctx, mood, summary)
	if err != nil || len(planTasks) == 0 {
		if err != nil {
			s.Logger.Warn("AI 生成计划失败，使用保底计划", zap.Uint("userID", userID), zap.Error(err))
		}
		planTasks = fallbackPlanTasks
		source = "manual"
	}

	tasks := make([]model.WellnessTask, len(planTasks))
	for i, t := range planTasks {
		tasks[i] = model.WellnessTask{
			UserID:      userID,
			Date:        date,
			Category:    t.Category,
			Title:       t.Title,
			Description: t.Description,
			Source:      source,
		}
	}

	return s.TaskRepo.BatchCreate(tasks)
}

type ManualTaskRequest struct {
	Category    string `json:"category"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// AddTask 学生手动添加当日任务
func (s *WellnessService) AddTask(userID uint, req ManualTaskRequest) (*model.WellnessTask, error) {
	task := model.WellnessTask{
		UserID:      userID,
		Date:        time.Now().Format(util.DateFormat),
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Source:      "manual",
	}
	created, err := s.TaskRepo.BatchCreate([]model.WellnessTask{task})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// SetCompleted 勾选/取消勾选任务
func (s *WellnessService) SetCompleted(taskID, userID uint, completed bool) error {
	return s.TaskRepo.SetCompleted(taskID, userID, completed)
}
