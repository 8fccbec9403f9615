package repository

import (
	"campus_wellness_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.CounselingSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id string) (*model.CounselingSession, error) {
	var s model.CounselingSession
	err := r.DB.Preload("User").Preload("Counselor").
		Where("id = ?", id).
		First(&s).Error
	return &s, err
}

func (r *SessionRepository) Update(s *model.CounselingSession) error {
	return r.DB.Save(s).Error
}

func (r *SessionRepository) ListByUser(userID uint, upcomingOnly bool) ([]model.CounselingSession, error) {
	var ss []model.CounselingSession
	query := r.DB.Preload("Counselor").Where("user_id = ?", userID)
	if upcomingOnly {
		query = query.Where("scheduled_at >= ? AND status IN ?",
			time.Now(), []model.SessionStatus{model.SessionPending, model.SessionConfirmed})
	}
	err := query.Order("scheduled_at asc").Find(&ss).Error
	return ss, err
}

func (r *SessionRepository) ListByCounselor(counselorID uint, from, to time.Time) ([]model.CounselingSession, error) {
	var ss []model.CounselingSession
	err := r.DB.Preload("User").
		Where("counselor_id = ? AND scheduled_at >= ? AND scheduled_at < ?", counselorID, from, to).
		Order("scheduled_at asc").
		Find(&ss).Error
	return ss, err
}

// ListAllBetween 管理端日历：全部辅导员的预约
func (r *SessionRepository) ListAllBetween(from, to time.Time) ([]model.CounselingSession, error) {
	var ss []model.CounselingSession
	err := r.DB.Preload("User").Preload("Counselor").
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
		Order("scheduled_at asc").
		Find(&ss).Error
	return ss, err
}

// HasConflict 同一辅导员在该时间段是否已有未取消的预约
func (r *SessionRepository) HasConflict(counselorID uint, at time.Time, durationMinutes int) (bool, error) {
	var count int64
	end := at.Add(time.Duration(durationMinutes) * time.Minute)
	err := r.DB.Model(&model.CounselingSession{}).
		Where("counselor_id = ? AND status IN ?", counselorID,
			[]model.SessionStatus{model.SessionPending, model.SessionConfirmed}).
		Where("scheduled_at < ? AND DATE_ADD(scheduled_at, INTERVAL duration MINUTE) > ?", end, at).
		Count(&count).Error
	return count > 0, err
}
