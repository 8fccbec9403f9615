package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send godoc
// @Summary 向 AI 助手发消息
// @Description 带最近几轮历史做上下文；推理失败时消息不落库，可原样重发
// @Tags AI助手
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body SendMessageRequest true "消息内容"
// @Success 200 {object} util.Response{data=model.ChatMessage} "助手回复"
// @Failure 502 {object} util.Response "推理服务不可用"
// @Router /api/chat [post]
func (c *ChatController) Send(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.Send(ctx.Request.Context(), claims.UserID, req.Content)
	if err != nil {
		util.Error(ctx, 502, "AI 助手暂时不可用，请稍后重试")
		return
	}
	util.Success(ctx, reply)
}

// History godoc
// @Summary 会话历史
// @Tags AI助手
// @Produce  json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	messages, total, err := c.ChatService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Clear godoc
// @Summary 清空会话
// @Tags AI助手
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/chat [delete]
func (c *ChatController) Clear(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChatService.Clear(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"cleared": true})
}
