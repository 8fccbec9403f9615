package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Trend godoc
// @Summary 健康趋势序列
// @Description 打卡 + 测评合成的每日健康分（0-100），默认最近 7 天
// @Tags 仪表盘
// @Produce  json
// @Security BearerAuth
// @Param days query int false "窗口天数（7/14/30）"
// @Success 200 {object} util.Response{data=service.TrendResponse} "成功"
// @Router /api/dashboard/trend [get]
func (c *DashboardController) Trend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "7"))

	trend, err := c.DashboardService.Trend(ctx.Request.Context(), claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trend)
}

// StudentOverview godoc
// @Summary 学生仪表盘
// @Description 趋势、最近心情、即将到来的预约、最近一次测评
// @Tags 仪表盘
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard} "成功"
// @Router /api/dashboard [get]
func (c *DashboardController) StudentOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.StudentOverview(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// CounselorOverview godoc
// @Summary 辅导员总览
// @Description 学生总数、近 30 天风险分布、未处理预警、今日预约
// @Tags 仪表盘
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CounselorOverview} "成功"
// @Router /api/counselor/dashboard [get]
func (c *DashboardController) CounselorOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.DashboardService.Overview(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
