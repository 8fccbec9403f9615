package repository

import (
	"campus_wellness_backend/internal/model"

	"gorm.io/gorm"
)

type AlertRepository struct {
	DB *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{DB: db}
}

func (r *AlertRepository) Create(a *model.Alert) error {
	return r.DB.Create(a).Error
}

func (r *AlertRepository) FindByID(id uint) (*model.Alert, error) {
	var a model.Alert
	err := r.DB.Preload("User").First(&a, id).Error
	return &a, err
}

func (r *AlertRepository) Update(a *model.Alert) error {
	return r.DB.Save(a).Error
}

func (r *AlertRepository) List(page, limit int, severity string, includeAcknowledged bool) ([]model.Alert, int64, error) {
	var alerts []model.Alert
	var total int64

	query := r.DB.Model(&model.Alert{}).Preload("User")
	if severity != "" && severity != "all" {
		query = query.Where("severity = ?", severity)
	}
	if !includeAcknowledged {
		query = query.Where("acknowledged = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&alerts).Error
	return alerts, total, err
}

func (r *AlertRepository) CountBySeverity() (map[model.AlertSeverity]int64, error) {
	type row struct {
		Severity model.AlertSeverity
		Count    int64
	}
	var rows []row
	err := r.DB.Model(&model.Alert{}).
		Select("severity, COUNT(*) as count").
		Where("acknowledged = ?", false).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.AlertSeverity]int64, len(rows))
	for _, r := range rows {
		out[r.Severity] = r.Count
	}
	return out, nil
}
