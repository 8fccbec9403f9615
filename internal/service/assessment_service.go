package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/scoring"
	"encoding/json"
	"fmt"
	"time"
)

// AssessmentService 量表提交与历史。提交是原子的：计分管线全部通过才落库，
// 任何一步失败整单拒绝，不存在半个提交。
type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	InstrumentSvc  *InstrumentService
	AlertSvc       *AlertService
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	instrumentSvc *InstrumentService,
	alertSvc *AlertService,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		InstrumentSvc:  instrumentSvc,
		AlertSvc:       alertSvc,
	}
}

type SubmitAssessmentRequest struct {
	InstrumentID uint                 `json:"instrumentId" binding:"required"`
	Answers      []model.QuestionPick `json:"answers" binding:"required"`
}

type AssessmentResultResponse struct {
	SubmissionID uint      `json:"submissionId"`
	Instrument   string    `json:"instrument"`
	TotalScore   int       `json:"totalScore"`
	MaxScore     int       `json:"maxScore"`
	RiskLevel    string    `json:"riskLevel"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Submit 执行完整计分管线并持久化。学生只能提交已发布量表。
// 结果落入最高风险档时自动创建预警。
func (s *AssessmentService) Submit(userID uint, req SubmitAssessmentRequest) (*AssessmentResultResponse, error) {
	inst, err := s.InstrumentSvc.GetByID(req.InstrumentID, true)
	if err != nil {
		return nil, err
	}

	tmpl, err := BuildTemplate(inst)
	if err != nil {
		return nil, err
	}

	picks := make(map[uint]string, len(req.Answers))
	for _, a := range req.Answers {
		picks[a.QuestionID] = a.Label
	}

	result, err := scoring.ScoreSubmission(tmpl, picks)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, err
	}

	submission := &model.AssessmentSubmission{
		UserID:       userID,
		InstrumentID: inst.ID,
		Answers:      answersJSON,
		TotalScore:   result.TotalScore,
		MaxScore:     result.MaxScore,
		RiskLevel:    result.RiskBand,
		SubmittedAt:  time.Now(),
	}
	if err := s.AssessmentRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	// 阈值表的最后一档是开放上界的最高风险档
	if len(tmpl.Thresholds) > 0 && result.RiskBand == tmpl.Thresholds[len(tmpl.Thresholds)-1].Band {
		s.AlertSvc.RaiseFromAssessment(userID, inst.Code, result.TotalScore, result.MaxScore, result.RiskBand)
	}

	return &AssessmentResultResponse{
		SubmissionID: submission.ID,
		Instrument:   inst.Code,
		TotalScore:   result.TotalScore,
		MaxScore:     result.MaxScore,
		RiskLevel:    result.RiskBand,
		SubmittedAt:  submission.SubmittedAt,
	}, nil
}

// History 学生自己的提交历史，按最新在前分页
func (s *AssessmentService) History(userID, instrumentID uint, page, limit int) ([]model.AssessmentSubmission, int64, error) {
	return s.AssessmentRepo.ListByUser(userID, instrumentID, page, limit)
}

func (s *AssessmentService) GetSubmission(id uint) (*model.AssessmentSubmission, error) {
	return s.AssessmentRepo.FindSubmissionByID(id)
}

// ListAll 辅导员/管理员按量表、风险等级、学生姓名筛选全部提交
func (s *AssessmentService) ListAll(page, limit int, instrumentID uint, riskLevel, studentName string) ([]model.AssessmentSubmission, int64, error) {
	return s.AssessmentRepo.ListSubmissions(page, limit, instrumentID, riskLevel, studentName)
}

// TrajectoryResponse 同一量表历史得分的走势
type TrajectoryResponse struct {
	Instrument string              `json:"instrument"`
	Scores     []int               `json:"scores"`
	Trajectory *scoring.Trajectory `json:"trajectory"`
}

// Trajectory 对学生在某量表上的全部历史得分做走势回归
func (s *AssessmentService) Trajectory(userID, instrumentID uint) (*TrajectoryResponse, error) {
	inst, err := s.InstrumentSvc.GetByID(instrumentID, false)
	if err != nil {
		return nil, err
	}

	submissions, err := s.AssessmentRepo.ListScoresAsc(userID, instrumentID)
	if err != nil {
		return nil, err
	}

	scores := make([]int, len(submissions))
	for i, sub := range submissions {
		scores[i] = sub.TotalScore
	}

	return &TrajectoryResponse{
		Instrument: inst.Code,
		Scores:     scores,
		Trajectory: scoring.ComputeTrajectory(scores),
	}, nil
}

// 快速筛查用每个量表的前两题（PHQ-2 / GAD-2），小分 >= 3 建议完成完整量表
const screenCutoff = 3

type ScreenRequest struct {
	InstrumentCode string               `json:"instrumentCode" binding:"required"`
	Answers        []model.QuestionPick `json:"answers" binding:"required"`
}

type ScreenResponse struct {
	Instrument     string `json:"instrument"`
	Score          int    `json:"score"`
	MaxScore       int    `json:"maxScore"`
	RecommendScale bool   `json:"recommendFullScale"`
	Recommendation string `json:"recommendation"`
}

// Screen 两题快速筛查。只计前两题的小分，不落库，不触发预警。
func (s *AssessmentService) Screen(req ScreenRequest) (*ScreenResponse, error) {
	inst, err := s.InstrumentSvc.GetByCode(req.InstrumentCode, true)
	if err != nil {
		return nil, err
	}

	tmpl, err := BuildTemplate(inst)
	if err != nil {
		return nil, err
	}
	if len(tmpl.Questions) < 2 {
		return nil, fmt.Errorf("instrument %s has fewer than two questions", inst.Code)
	}

	picks := make(map[uint]string, len(req.Answers))
	for _, a := range req.Answers {
		picks[a.QuestionID] = a.Label
	}

	score, max := 0, 0
	for _, q := range tmpl.Questions[:2] {
		label, ok := picks[q.ID]
		if !ok {
			return nil, fmt.Errorf("screen requires answers to the first two questions of %s", inst.Code)
		}
		value, err := scoring.ScoreAnswer(q, label)
		if err != nil {
			return nil, err
		}
		score += value

		best := 0
		for _, opt := range q.Options {
			if opt.Value > best {
				best = opt.Value
			}
		}
		max += best
	}

	resp := &ScreenResponse{
		Instrument:     inst.Code,
		Score:          score,
		MaxScore:       max,
		RecommendScale: score >= screenCutoff,
	}
	if resp.RecommendScale {
		resp.Recommendation = fmt.Sprintf("建议完成完整的 %s 量表以获得准确评估", inst.Code)
	} else {
		resp.Recommendation = "当前筛查未见明显风险，保持关注即可"
	}
	return resp, nil
}
