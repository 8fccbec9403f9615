package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type JournalController struct {
	JournalService   *service.JournalService
	DashboardService *service.DashboardService
	ActivityService  *service.ActivityService
}

func NewJournalController(
	journalService *service.JournalService,
	dashboardService *service.DashboardService,
	activityService *service.ActivityService,
) *JournalController {
	return &JournalController{
		JournalService:   journalService,
		DashboardService: dashboardService,
		ActivityService:  activityService,
	}
}

// CheckIn godoc
// @Summary 心情打卡
// @Description 记录当天心情，Awful 自动通知辅导员
// @Tags 日记
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.CheckInRequest true "心情与影响因素"
// @Success 201 {object} util.Response{data=model.Journal} "打卡成功"
// @Failure 400 {object} util.Response "未知的心情标签"
// @Router /api/journals/checkin [post]
func (c *JournalController) CheckIn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	journal, err := c.JournalService.CheckIn(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.DashboardService.InvalidateTrend(ctx.Request.Context(), claims.UserID)
	c.ActivityService.Record(claims.UserID, "mood_checkin", gin.H{"mood": req.Mood})

	util.Created(ctx, journal)
}

// Create godoc
// @Summary 写日记
// @Description 保存日记并可选返回情绪分析，分析失败不影响保存
// @Tags 日记
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.JournalRequest true "日记内容"
// @Success 201 {object} util.Response{data=object} "保存成功"
// @Router /api/journals [post]
func (c *JournalController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.JournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	journal, analysis, err := c.JournalService.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	c.DashboardService.InvalidateTrend(ctx.Request.Context(), claims.UserID)

	util.Created(ctx, gin.H{
		"journal":  journal,
		"analysis": analysis,
	})
}

// List godoc
// @Summary 我的日记列表
// @Tags 日记
// @Produce  json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/journals [get]
func (c *JournalController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	journals, total, err := c.JournalService.List(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"journals": journals,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// Get godoc
// @Summary 日记详情
// @Tags 日记
// @Produce  json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} util.Response{data=model.Journal} "成功"
// @Failure 403 {object} util.Response "无权查看"
// @Router /api/journals/{id} [get]
func (c *JournalController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "日记ID无效")
		return
	}

	journal, err := c.JournalService.Get(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, journal)
}

// Delete godoc
// @Summary 删除日记
// @Tags 日记
// @Produce  json
// @Security BearerAuth
// @Param id path int true "日记ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/journals/{id} [delete]
func (c *JournalController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "日记ID无效")
		return
	}

	if err := c.JournalService.Delete(uint(id), claims.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
