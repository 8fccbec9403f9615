package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	AlertService *service.AlertService
}

func NewAlertController(alertService *service.AlertService) *AlertController {
	return &AlertController{AlertService: alertService}
}

// List godoc
// @Summary 预警列表
// @Description 默认只展示未处理的，可按严重级别筛选
// @Tags 预警
// @Produce  json
// @Security BearerAuth
// @Param severity query string false "Critical/High/Medium/Low"
// @Param includeAcknowledged query bool false "是否包含已处理"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/counselor/alerts [get]
func (c *AlertController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	includeAcknowledged := ctx.Query("includeAcknowledged") == "true"

	alerts, total, err := c.AlertService.List(page, limit, ctx.Query("severity"), includeAcknowledged)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"alerts": alerts,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// Acknowledge godoc
// @Summary 确认处理预警
// @Description 重复确认幂等
// @Tags 预警
// @Produce  json
// @Security BearerAuth
// @Param id path int true "预警ID"
// @Success 200 {object} util.Response{data=model.Alert} "成功"
// @Failure 404 {object} util.Response "预警不存在"
// @Router /api/counselor/alerts/{id}/acknowledge [put]
func (c *AlertController) Acknowledge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "预警ID无效")
		return
	}

	alert, err := c.AlertService.Acknowledge(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAlertNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, alert)
}
