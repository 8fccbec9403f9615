package service

import (
	"bytes"
	"campus_wellness_backend/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AIService 本地推理服务客户端。三个端点挂在同一个 BaseURL 下：
// /chat 对话、/generate_plan 生成每日健康计划、/analyze 日记情绪分析。
// 所有调用都带超时，推理服务不可用时由上层降级，不阻塞主流程。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

type aiChatRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type aiChatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

type aiPlanRequest struct {
	Model          string `json:"model"`
	Mood           string `json:"mood"`
	JournalSummary string `json:"journal_summary"`
}

// AIPlanTask 推理服务返回的单条计划任务
type AIPlanTask struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type aiPlanResponse struct {
	Tasks []AIPlanTask `json:"tasks"`
	Error string       `json:"error,omitempty"`
}

type aiAnalyzeRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

// AIAnalysis 日记文本的情绪分析结果
type AIAnalysis struct {
	Sentiment string   `json:"sentiment"` // positive, neutral, negative
	Keywords  []string `json:"keywords"`
	Summary   string   `json:"summary"`
}

type aiAnalyzeResponse struct {
	AIAnalysis
	Error string `json:"error,omitempty"`
}

const assistantSystemPrompt = "你是校园心理健康助手，以温和、支持性的语气回答学生的问题。" +
	"不做医学诊断，不开处方；当学生表达自伤或伤害他人的念头时，" +
	"引导其立即联系校心理咨询中心或紧急求助热线。回答保持简短、具体、可执行。"

// Chat 带历史上下文的单轮对话，history 按时间升序
func (s *AIService) Chat(ctx context.Context, prompt string, history []AIChatMessage) (string, error) {
	messages := make([]AIChatMessage, 0, len(history)+2)
	messages = append(messages, AIChatMessage{Role: "system", Content: assistantSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	var resp aiChatResponse
	if err := s.post(ctx, "/chat", aiChatRequest{Model: s.config.Model, Messages: messages}, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", fmt.Errorf("AI chat error: %s", resp.Error)
	}
	return resp.Reply, nil
}

// GeneratePlan 根据最近心情与日记摘要生成当日计划任务
func (s *AIService) GeneratePlan(ctx context.Context, mood, journalSummary string) ([]AIPlanTask, error) {
	var resp aiPlanResponse
	req := aiPlanRequest{Model: s.config.Model, Mood: mood, JournalSummary: journalSummary}
	if err := s.post(ctx, "/generate_plan", req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("AI plan error: %s", resp.Error)
	}
	return resp.Tasks, nil
}

// Analyze 日记文本情绪分析
func (s *AIService) Analyze(ctx context.Context, text string) (*AIAnalysis, error) {
	var resp aiAnalyzeResponse
	if err := s.post(ctx, "/analyze", aiAnalyzeRequest{Model: s.config.Model, Text: text}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("AI analyze error: %s", resp.Error)
	}
	return &resp.AIAnalysis, nil
}

func (s *AIService) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
