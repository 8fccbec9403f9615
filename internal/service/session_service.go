package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const defaultSessionMinutes = 30

// SessionService 咨询预约。同一辅导员同一时段只能有一个未取消的预约，
// 冲突检查放在数据库层按时间区间判断。
type SessionService struct {
	SessionRepo *repository.SessionRepository
	UserRepo    *repository.UserRepository
}

func NewSessionService(sessionRepo *repository.SessionRepository, userRepo *repository.UserRepository) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
	}
}

type BookSessionRequest struct {
	CounselorID uint      `json:"counselorId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Duration    int       `json:"duration"`
	Topic       string    `json:"topic"`
}

// Book 学生预约辅导员。只能约未来时间，时段冲突直接拒绝。
func (s *SessionService) Book(userID uint, req BookSessionRequest) (*model.CounselingSession, error) {
	counselor, err := s.UserRepo.FindByID(req.CounselorID)
	if err != nil || counselor.Role != model.Counselor {
		return nil, errors.New("辅导员不存在")
	}

	if !req.ScheduledAt.After(time.Now()) {
		return nil, errors.New("预约时间必须在将来")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = defaultSessionMinutes
	}

	conflict, err := s.SessionRepo.HasConflict(req.CounselorID, req.ScheduledAt, duration)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, util.ErrSessionSlotTaken
	}

	session := &model.CounselingSession{
		UserID:      userID,
		CounselorID: req.CounselorID,
		ScheduledAt: req.ScheduledAt,
		Duration:    duration,
		Status:      model.SessionPending,
		Topic:       req.Topic,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(id string) (*model.CounselingSession, error) {
	session, err := s.SessionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListForStudent(userID uint, upcomingOnly bool) ([]model.CounselingSession, error) {
	return s.SessionRepo.ListByUser(userID, upcomingOnly)
}

func (s *SessionService) ListForCounselor(counselorID uint, from, to time.Time) ([]model.CounselingSession, error) {
	return s.SessionRepo.ListByCounselor(counselorID, from, to)
}

// Cancel 学生在开始前取消自己的预约。已完成/已取消的不可再取消。
func (s *SessionService) Cancel(id string, userID uint) (*model.CounselingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if session.Status == model.SessionCompleted || session.Status == model.SessionCancelled {
		return nil, util.ErrSessionNotCancellable
	}
	if !session.ScheduledAt.After(time.Now()) {
		return nil, util.ErrSessionNotCancellable
	}

	session.Status = model.SessionCancelled
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateStatus 辅导员确认或完成自己的预约
func (s *SessionService) UpdateStatus(id string, counselorID uint, status model.SessionStatus, notes string) (*model.CounselingSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.CounselorID != counselorID {
		return nil, util.ErrPermissionDenied
	}

	switch status {
	case model.SessionConfirmed, model.SessionCompleted, model.SessionCancelled:
	default:
		return nil, fmt.Errorf("无效的预约状态: %q", status)
	}

	session.Status = status
	if notes != "" {
		session.Notes = notes
	}
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}
