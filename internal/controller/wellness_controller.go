package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type WellnessController struct {
	WellnessService *service.WellnessService
	ActivityService *service.ActivityService
}

func NewWellnessController(wellnessService *service.WellnessService, activityService *service.ActivityService) *WellnessController {
	return &WellnessController{
		WellnessService: wellnessService,
		ActivityService: activityService,
	}
}

// TodayPlan godoc
// @Summary 今日健康计划
// @Description 没有计划时自动生成一份，AI 不可用时回退保底计划
// @Tags 健康计划
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.WellnessTask} "成功"
// @Router /api/wellness/plan [get]
func (c *WellnessController) TodayPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.WellnessService.TodayPlan(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// Regenerate godoc
// @Summary 重新生成今日计划
// @Tags 健康计划
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.WellnessTask} "成功"
// @Router /api/wellness/plan/regenerate [post]
func (c *WellnessController) Regenerate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.WellnessService.Regenerate(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// AddTask godoc
// @Summary 手动添加任务
// @Tags 健康计划
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.ManualTaskRequest true "任务内容"
// @Success 201 {object} util.Response{data=model.WellnessTask} "创建成功"
// @Router /api/wellness/tasks [post]
func (c *WellnessController) AddTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ManualTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.WellnessService.AddTask(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, task)
}

type TaskCompletedRequest struct {
	Completed bool `json:"completed"`
}

// SetCompleted godoc
// @Summary 勾选任务
// @Tags 健康计划
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Param body body TaskCompletedRequest true "完成状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/wellness/tasks/{id}/complete [put]
func (c *WellnessController) SetCompleted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "任务ID无效")
		return
	}

	var req TaskCompletedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.WellnessService.SetCompleted(uint(id), claims.UserID, req.Completed); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if req.Completed {
		c.ActivityService.Record(claims.UserID, "task_completed", gin.H{"taskId": id})
	}
	util.Success(ctx, gin.H{"updated": true})
}
