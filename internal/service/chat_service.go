package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"context"
)

// 注入给推理服务的历史轮数
const chatContextDepth = 10

// ChatService AI 助手会话。消息持久化在 MySQL，近期上下文走 Redis 缓存；
// 每轮对话带上最近几轮历史，支持多轮追问。
type ChatService struct {
	ChatRepo *repository.ChatRepository
	AISvc    *AIService
}

func NewChatService(chatRepo *repository.ChatRepository, aiSvc *AIService) *ChatService {
	return &ChatService{
		ChatRepo: chatRepo,
		AISvc:    aiSvc,
	}
}

// Send 一轮完整对话：取历史 → 调推理服务 → 持久化双方消息。
// 推理失败时用户消息不落库，学生可原样重发。
func (s *ChatService) Send(ctx context.Context, userID uint, content string) (*model.ChatMessage, error) {
	recent, err := s.ChatRepo.RecentByUser(userID, chatContextDepth)
	if err != nil {
		return nil, err
	}

	history := make([]AIChatMessage, len(recent))
	for i, m := range recent {
		history[i] = AIChatMessage{Role: m.Role, Content: m.Content}
	}

	reply, err := s.AISvc.Chat(ctx, content, history)
	if err != nil {
		return nil, err
	}

	userMsg := &model.ChatMessage{UserID: userID, Role: "user", Content: content}
	if err := s.ChatRepo.Create(userMsg); err != nil {
		return nil, err
	}

	assistantMsg := &model.ChatMessage{UserID: userID, Role: "assistant", Content: reply}
	if err := s.ChatRepo.Create(assistantMsg); err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

func (s *ChatService) History(userID uint, page, limit int) ([]model.ChatMessage, int64, error) {
	return s.ChatRepo.ListByUser(userID, page, limit)
}

func (s *ChatService) Clear(userID uint) error {
	return s.ChatRepo.ClearByUser(userID)
}
