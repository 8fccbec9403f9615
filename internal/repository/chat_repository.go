package repository

import (
	"campus_wellness_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ChatRepository AI 助手会话存储。MySQL 为事实来源，
// Redis 缓存最近若干条作为推理上下文，省去每轮对话的历史查询。
type ChatRepository struct {
	DB           *gorm.DB
	Redis        *redis.Client
	ctx          context.Context
	contextDepth int64
	cacheTTL     time.Duration
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{
		DB:           db,
		Redis:        rdb,
		ctx:          context.Background(),
		contextDepth: 20,
		cacheTTL:     24 * time.Hour,
	}
}

func (r *ChatRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("assistant:history:%d", userID)
}

func (r *ChatRepository) Create(msg *model.ChatMessage) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(msg); err == nil {
			key := r.cacheKey(msg.UserID)
			pipe := r.Redis.Pipeline()
			pipe.RPush(r.ctx, key, data)
			pipe.LTrim(r.ctx, key, -r.contextDepth, -1)
			pipe.Expire(r.ctx, key, r.cacheTTL)
			pipe.Exec(r.ctx)
		}
	}
	return nil
}

// RecentByUser 最近 limit 条消息，升序。优先走 Redis 缓存，未命中回源 MySQL。
func (r *ChatRepository) RecentByUser(userID uint, limit int) ([]model.ChatMessage, error) {
	if r.Redis != nil && int64(limit) <= r.contextDepth {
		raws, err := r.Redis.LRange(r.ctx, r.cacheKey(userID), int64(-limit), -1).Result()
		if err == nil && len(raws) > 0 {
			msgs := make([]model.ChatMessage, 0, len(raws))
			ok := true
			for _, raw := range raws {
				var m model.ChatMessage
				if err := json.Unmarshal([]byte(raw), &m); err != nil {
					ok = false
					break
				}
				msgs = append(msgs, m)
			}
			if ok {
				return msgs, nil
			}
		}
	}

	var msgs []model.ChatMessage
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 倒序查的，翻回升序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *ChatRepository) ListByUser(userID uint, page, limit int) ([]model.ChatMessage, int64, error) {
	var msgs []model.ChatMessage
	var total int64

	query := r.DB.Model(&model.ChatMessage{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&msgs).Error
	return msgs, total, err
}

// ClearByUser 清空会话历史（学生主动重置助手）
func (r *ChatRepository) ClearByUser(userID uint) error {
	if err := r.DB.Where("user_id = ?", userID).Delete(&model.ChatMessage{}).Error; err != nil {
		return err
	}
	if r.Redis != nil {
		r.Redis.Del(r.ctx, r.cacheKey(userID))
	}
	return nil
}
