package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InstrumentController struct {
	InstrumentService *service.InstrumentService
}

func NewInstrumentController(instrumentService *service.InstrumentService) *InstrumentController {
	return &InstrumentController{InstrumentService: instrumentService}
}

func instrumentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInstrumentNotFound), errors.Is(err, util.ErrInstrumentUnpublished):
		util.NotFound(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// ListPublished godoc
// @Summary 已发布量表列表
// @Description 学生可见的量表（PHQ-9、GAD-7、压力自评等）
// @Tags 量表
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Instrument} "成功"
// @Router /api/instruments [get]
func (c *InstrumentController) ListPublished(ctx *gin.Context) {
	instruments, err := c.InstrumentService.List(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, instruments)
}

// Get godoc
// @Summary 量表详情（含题目）
// @Tags 量表
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Success 200 {object} util.Response{data=model.Instrument} "成功"
// @Failure 404 {object} util.Response "量表不存在或未发布"
// @Router /api/instruments/{id} [get]
func (c *InstrumentController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	inst, err := c.InstrumentService.GetByID(uint(id), true)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, inst)
}

// --- 管理端 ---

// AdminList godoc
// @Summary 全部量表列表（含未发布）
// @Tags 量表管理
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Instrument} "成功"
// @Router /api/admin/instruments [get]
func (c *InstrumentController) AdminList(ctx *gin.Context) {
	instruments, err := c.InstrumentService.List(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, instruments)
}

// AdminGet godoc
// @Summary 量表详情（管理端）
// @Tags 量表管理
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Success 200 {object} util.Response{data=model.Instrument} "成功"
// @Router /api/admin/instruments/{id} [get]
func (c *InstrumentController) AdminGet(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	inst, err := c.InstrumentService.GetByID(uint(id), false)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, inst)
}

// Create godoc
// @Summary 创建量表
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.InstrumentRequest true "量表信息"
// @Success 201 {object} util.Response{data=model.Instrument} "创建成功"
// @Router /api/admin/instruments [post]
func (c *InstrumentController) Create(ctx *gin.Context) {
	var req service.InstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inst, err := c.InstrumentService.Create(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, inst)
}

// Update godoc
// @Summary 更新量表基本信息
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Param body body service.InstrumentRequest true "量表信息"
// @Success 200 {object} util.Response{data=model.Instrument} "成功"
// @Router /api/admin/instruments/{id} [put]
func (c *InstrumentController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	var req service.InstrumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inst, err := c.InstrumentService.Update(uint(id), req)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, inst)
}

// Delete godoc
// @Summary 删除量表
// @Tags 量表管理
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/instruments/{id} [delete]
func (c *InstrumentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	if err := c.InstrumentService.Delete(uint(id)); err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// SetPublished godoc
// @Summary 发布/下线量表
// @Description 发布前校验题目与阈值表完整性
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Param body body PublishRequest true "发布状态"
// @Success 200 {object} util.Response{data=model.Instrument} "成功"
// @Failure 400 {object} util.Response "模板不完整"
// @Router /api/admin/instruments/{id}/publish [put]
func (c *InstrumentController) SetPublished(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	inst, err := c.InstrumentService.SetPublished(uint(id), req.Published)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, inst)
}

// AddQuestion godoc
// @Summary 添加题目
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Param body body service.QuestionRequest true "题目与选项"
// @Success 201 {object} util.Response{data=model.InstrumentQuestion} "创建成功"
// @Router /api/admin/instruments/{id}/questions [post]
func (c *InstrumentController) AddQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.InstrumentService.AddQuestion(uint(id), req)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Param body body service.QuestionRequest true "题目与选项"
// @Success 200 {object} util.Response{data=model.InstrumentQuestion} "成功"
// @Router /api/admin/questions/{questionId} [put]
func (c *InstrumentController) UpdateQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "题目ID无效")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.InstrumentService.UpdateQuestion(uint(questionID), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 量表管理
// @Produce  json
// @Security BearerAuth
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/questions/{questionId} [delete]
func (c *InstrumentController) DeleteQuestion(ctx *gin.Context) {
	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "题目ID无效")
		return
	}

	if err := c.InstrumentService.DeleteQuestion(uint(questionID)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

type ReplaceThresholdsRequest struct {
	Thresholds []service.ThresholdRequest `json:"thresholds" binding:"required"`
}

// ReplaceThresholds godoc
// @Summary 整表替换风险阈值
// @Description 分段必须从 0 开始、连续且覆盖满分，否则整表拒绝
// @Tags 量表管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "量表ID"
// @Param body body ReplaceThresholdsRequest true "阈值分段"
// @Success 200 {object} util.Response{data=[]model.InstrumentThreshold} "成功"
// @Failure 400 {object} util.Response "阈值表不合法"
// @Router /api/admin/instruments/{id}/thresholds [put]
func (c *InstrumentController) ReplaceThresholds(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	var req ReplaceThresholdsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rows, err := c.InstrumentService.ReplaceThresholds(uint(id), req.Thresholds)
	if err != nil {
		instrumentError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
