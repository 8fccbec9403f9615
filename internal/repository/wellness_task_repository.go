package repository

import (
	"campus_wellness_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type WellnessTaskRepository struct {
	DB *gorm.DB
}

func NewWellnessTaskRepository(db *gorm.DB) *WellnessTaskRepository {
	return &WellnessTaskRepository{DB: db}
}

// BatchCreate 一次计划生成的任务整批入库
func (r *WellnessTaskRepository) BatchCreate(tasks []model.WellnessTask) ([]model.WellnessTask, error) {
	if len(tasks) == 0 {
		return tasks, nil
	}
	err := r.DB.Create(&tasks).Error
	return tasks, err
}

func (r *WellnessTaskRepository) FindByID(id uint) (*model.WellnessTask, error) {
	var t model.WellnessTask
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *WellnessTaskRepository) ListByUserAndDate(userID uint, date string) ([]model.WellnessTask, error) {
	var ts []model.WellnessTask
	err := r.DB.Where("user_id = ? AND date = ?", userID, date).
		Order("category asc, id asc").
		Find(&ts).Error
	return ts, err
}

func (r *WellnessTaskRepository) SetCompleted(id, userID uint, completed bool) error {
	updates := map[string]interface{}{"completed": completed}
	if completed {
		now := time.Now()
		updates["completed_at"] = &now
	} else {
		updates["completed_at"] = nil
	}
	return r.DB.Model(&model.WellnessTask{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
}
