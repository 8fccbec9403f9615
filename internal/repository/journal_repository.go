package repository

import (
	"campus_wellness_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type JournalRepository struct {
	DB *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{DB: db}
}

func (r *JournalRepository) Create(j *model.Journal) error {
	return r.DB.Create(j).Error
}

func (r *JournalRepository) FindByID(id uint) (*model.Journal, error) {
	var j model.Journal
	err := r.DB.First(&j, id).Error
	return &j, err
}

func (r *JournalRepository) ListByUser(userID uint, page, limit int) ([]model.Journal, int64, error) {
	var js []model.Journal
	var total int64

	query := r.DB.Model(&model.Journal{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&js).Error
	return js, total, err
}

// ListSince 窗口期内的日记/打卡，供健康趋势聚合
func (r *JournalRepository) ListSince(userID uint, since time.Time) ([]model.Journal, error) {
	var js []model.Journal
	err := r.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc").
		Find(&js).Error
	return js, err
}

func (r *JournalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Journal{}, id).Error
}

// LatestByUser 最近一条日记，生成健康计划时作为 AI 上下文
func (r *JournalRepository) LatestByUser(userID uint) (*model.Journal, error) {
	var j model.Journal
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		First(&j).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}
