package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/scoring"
	"campus_wellness_backend/internal/util"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// InstrumentService 量表模板管理。模板由管理员维护，学生只能读已发布的；
// 阈值表在写入前用计分引擎校验，保证任何合法总分都能落进唯一风险档。
type InstrumentService struct {
	InstrumentRepo *repository.InstrumentRepository
}

func NewInstrumentService(instrumentRepo *repository.InstrumentRepository) *InstrumentService {
	return &InstrumentService{InstrumentRepo: instrumentRepo}
}

type InstrumentRequest struct {
	Code        string `json:"code" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type QuestionRequest struct {
	Content  string           `json:"content" binding:"required"`
	Options  []scoring.Option `json:"options" binding:"required"`
	Required *bool            `json:"required"`
	Order    int              `json:"order"`
}

type ThresholdRequest struct {
	Band     string `json:"band" binding:"required"`
	MinScore int    `json:"minScore"`
	MaxScore int    `json:"maxScore"`
}

func (s *InstrumentService) List(publishedOnly bool) ([]model.Instrument, error) {
	return s.InstrumentRepo.List(publishedOnly)
}

func (s *InstrumentService) GetByID(id uint, requirePublished bool) (*model.Instrument, error) {
	inst, err := s.InstrumentRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInstrumentNotFound
		}
		return nil, err
	}
	if requirePublished && !inst.IsPublished {
		return nil, util.ErrInstrumentUnpublished
	}
	return inst, nil
}

func (s *InstrumentService) GetByCode(code string, requirePublished bool) (*model.Instrument, error) {
	inst, err := s.InstrumentRepo.FindByCode(code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInstrumentNotFound
		}
		return nil, err
	}
	if requirePublished && !inst.IsPublished {
		return nil, util.ErrInstrumentUnpublished
	}
	return inst, nil
}

func (s *InstrumentService) Create(req InstrumentRequest) (*model.Instrument, error) {
	inst := &model.Instrument{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.InstrumentRepo.Create(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *InstrumentService) Update(id uint, req InstrumentRequest) (*model.Instrument, error) {
	inst, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	inst.Code = req.Code
	inst.Title = req.Title
	inst.Description = req.Description
	if err := s.InstrumentRepo.Update(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *InstrumentService) Delete(id uint) error {
	if _, err := s.GetByID(id, false); err != nil {
		return err
	}
	return s.InstrumentRepo.Delete(id)
}

// SetPublished 发布前要求模板完整：至少一道题且阈值表通过引擎校验
func (s *InstrumentService) SetPublished(id uint, published bool) (*model.Instrument, error) {
	inst, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}

	if published {
		tmpl, err := BuildTemplate(inst)
		if err != nil {
			return nil, err
		}
		if len(tmpl.Questions) == 0 {
			return nil, fmt.Errorf("量表尚无题目，无法发布")
		}
		if err := scoring.ValidateThresholds(tmpl.Thresholds, tmpl.MaxScore()); err != nil {
			return nil, err
		}
	}

	inst.IsPublished = published
	if err := s.InstrumentRepo.Update(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *InstrumentService) AddQuestion(instrumentID uint, req QuestionRequest) (*model.InstrumentQuestion, error) {
	if _, err := s.GetByID(instrumentID, false); err != nil {
		return nil, err
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	required := true
	if req.Required != nil {
		required = *req.Required
	}

	q := &model.InstrumentQuestion{
		InstrumentID: instrumentID,
		Content:      req.Content,
		Options:      options,
		Required:     required,
		Order:        req.Order,
	}
	if err := s.InstrumentRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *InstrumentService) UpdateQuestion(questionID uint, req QuestionRequest) (*model.InstrumentQuestion, error) {
	q, err := s.InstrumentRepo.FindQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	q.Content = req.Content
	q.Options = options
	if req.Required != nil {
		q.Required = *req.Required
	}
	q.Order = req.Order

	if err := s.InstrumentRepo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *InstrumentService) DeleteQuestion(questionID uint) error {
	return s.InstrumentRepo.DeleteQuestion(questionID)
}

// ReplaceThresholds 整表替换阈值。先按当前题目的满分校验分段完整性，
// 不合法的阈值表不落库。
func (s *InstrumentService) ReplaceThresholds(instrumentID uint, reqs []ThresholdRequest) ([]model.InstrumentThreshold, error) {
	inst, err := s.GetByID(instrumentID, false)
	if err != nil {
		return nil, err
	}

	tmpl, err := BuildTemplate(inst)
	if err != nil {
		return nil, err
	}

	thresholds := make([]scoring.Threshold, len(reqs))
	rows := make([]model.InstrumentThreshold, len(reqs))
	for i, r := range reqs {
		thresholds[i] = scoring.Threshold{Band: r.Band, Min: r.MinScore, Max: r.MaxScore}
		rows[i] = model.InstrumentThreshold{
			InstrumentID: instrumentID,
			Band:         r.Band,
			MinScore:     r.MinScore,
			MaxScore:     r.MaxScore,
			Order:        i,
		}
	}

	if err := scoring.ValidateThresholds(thresholds, tmpl.MaxScore()); err != nil {
		return nil, err
	}

	if err := s.InstrumentRepo.ReplaceThresholds(instrumentID, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BuildTemplate 把数据库里的量表行转换成计分引擎的模板。
// 题目选项存为 JSON，解析失败视为配置错误向上抛。
func BuildTemplate(inst *model.Instrument) (scoring.Template, error) {
	tmpl := scoring.Template{
		InstrumentCode: inst.Code,
		Questions:      make([]scoring.Question, 0, len(inst.Questions)),
		Thresholds:     make([]scoring.Threshold, 0, len(inst.Thresholds)),
	}

	for _, q := range inst.Questions {
		var options []scoring.Option
		if err := json.Unmarshal(q.Options, &options); err != nil {
			return scoring.Template{}, fmt.Errorf("instrument %s question %d has malformed options: %w", inst.Code, q.ID, err)
		}
		tmpl.Questions = append(tmpl.Questions, scoring.Question{
			ID:       q.ID,
			Content:  q.Content,
			Required: q.Required,
			Options:  options,
		})
	}

	for _, t := range inst.Thresholds {
		tmpl.Thresholds = append(tmpl.Thresholds, scoring.Threshold{
			Band: t.Band,
			Min:  t.MinScore,
			Max:  t.MaxScore,
		})
	}

	return tmpl, nil
}
