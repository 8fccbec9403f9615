package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus_wellness_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIService(handler http.Handler) (*AIService, *httptest.Server) {
	server := httptest.NewServer(handler)
	svc := NewAIService(config.AIConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "qwen2.5-7b-instruct",
		TimeoutSeconds: 5,
	})
	return svc, server
}

func TestAIServiceChat(t *testing.T) {
	var got aiChatRequest
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(aiChatResponse{Reply: "深呼吸三次，然后告诉我发生了什么。"})
	}))
	defer server.Close()

	history := []AIChatMessage{
		{Role: "user", Content: "最近压力很大"},
		{Role: "assistant", Content: "能具体说说吗？"},
	}
	reply, err := svc.Chat(context.Background(), "考试太多了", history)
	require.NoError(t, err)
	assert.Equal(t, "深呼吸三次，然后告诉我发生了什么。", reply)

	// system prompt + 两条历史 + 本轮提问
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "考试太多了", got.Messages[3].Content)
	assert.Equal(t, "qwen2.5-7b-instruct", got.Model)
}

func TestAIServiceChatUpstreamError(t *testing.T) {
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(aiChatResponse{Error: "model overloaded"})
	}))
	defer server.Close()

	_, err := svc.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestAIServiceChatBadStatus(t *testing.T) {
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := svc.Chat(context.Background(), "hi", nil)
	require.Error(t, err)
}

func TestAIServiceGeneratePlan(t *testing.T) {
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_plan", r.URL.Path)
		var req aiPlanRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bad", req.Mood)
		json.NewEncoder(w).Encode(aiPlanResponse{Tasks: []AIPlanTask{
			{Category: "mindfulness", Title: "正念呼吸", Description: "5 分钟"},
			{Category: "exercise", Title: "散步", Description: "20 分钟"},
		}})
	}))
	defer server.Close()

	tasks, err := svc.GeneratePlan(context.Background(), "Bad", "最近睡不好")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "正念呼吸", tasks[0].Title)
}

func TestAIServiceAnalyze(t *testing.T) {
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		json.NewEncoder(w).Encode(aiAnalyzeResponse{AIAnalysis: AIAnalysis{
			Sentiment: "negative",
			Keywords:  []string{"失眠", "考试"},
			Summary:   "考试压力导致睡眠问题",
		}})
	}))
	defer server.Close()

	analysis, err := svc.Analyze(context.Background(), "考试前总是失眠")
	require.NoError(t, err)
	assert.Equal(t, "negative", analysis.Sentiment)
	assert.Equal(t, []string{"失眠", "考试"}, analysis.Keywords)
}

func TestAIServiceContextCancel(t *testing.T) {
	svc, server := newTestAIService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Chat(ctx, "hi", nil)
	require.Error(t, err)
}
