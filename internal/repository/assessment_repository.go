package repository

import (
	"campus_wellness_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) CreateSubmission(s *model.AssessmentSubmission) error {
	return r.DB.Create(s).Error
}

func (r *AssessmentRepository) FindSubmissionByID(id uint) (*model.AssessmentSubmission, error) {
	var s model.AssessmentSubmission
	err := r.DB.Preload("User").First(&s, id).Error
	return &s, err
}

// ListByUser 学生本人的提交历史，最新在前
func (r *AssessmentRepository) ListByUser(userID uint, instrumentID uint, page, limit int) ([]model.AssessmentSubmission, int64, error) {
	var ss []model.AssessmentSubmission
	var total int64

	query := r.DB.Model(&model.AssessmentSubmission{}).Where("user_id = ?", userID)
	if instrumentID > 0 {
		query = query.Where("instrument_id = ?", instrumentID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

// ListScoresAsc 同一量表的历史得分，按提交时间升序，用于走势回归
func (r *AssessmentRepository) ListScoresAsc(userID, instrumentID uint) ([]model.AssessmentSubmission, error) {
	var ss []model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND instrument_id = ?", userID, instrumentID).
		Order("submitted_at asc").
		Find(&ss).Error
	return ss, err
}

// ListSince 窗口期内的提交，供健康趋势聚合
func (r *AssessmentRepository) ListSince(userID uint, since time.Time) ([]model.AssessmentSubmission, error) {
	var ss []model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND submitted_at >= ?", userID, since).
		Order("submitted_at asc").
		Find(&ss).Error
	return ss, err
}

// ListSubmissions 管理端提交列表，可按量表、风险档、学生姓名过滤
func (r *AssessmentRepository) ListSubmissions(page, limit int, instrumentID uint, riskLevel, studentName string) ([]model.AssessmentSubmission, int64, error) {
	var ss []model.AssessmentSubmission
	var total int64

	query := r.DB.Model(&model.AssessmentSubmission{}).Preload("User")
	if instrumentID > 0 {
		query = query.Where("instrument_id = ?", instrumentID)
	}
	if riskLevel != "" {
		query = query.Where("risk_level = ?", riskLevel)
	}
	if studentName != "" {
		query = query.Joins("JOIN users ON users.id = assessment_submissions.user_id").
			Where("users.name LIKE ?", "%"+studentName+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

// CountByRiskLevel 管理端概览：窗口期内各风险档提交数量
func (r *AssessmentRepository) CountByRiskLevel(since time.Time) (map[string]int64, error) {
	type row struct {
		RiskLevel string
		Count     int64
	}
	var rows []row
	err := r.DB.Model(&model.AssessmentSubmission{}).
		Select("risk_level, COUNT(*) as count").
		Where("submitted_at >= ?", since).
		Group("risk_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.RiskLevel] = r.Count
	}
	return out, nil
}
