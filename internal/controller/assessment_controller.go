package controller

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/scoring"
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	DashboardService  *service.DashboardService
	ActivityService   *service.ActivityService
}

func NewAssessmentController(
	assessmentService *service.AssessmentService,
	dashboardService *service.DashboardService,
	activityService *service.ActivityService,
) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		DashboardService:  dashboardService,
		ActivityService:   activityService,
	}
}

// 计分引擎的错误分类映射到 HTTP：未答完是学生问题（422），
// 配置/完整性错误是后台问题（500），不把内部细节漏给学生端。
func scoringError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrIncompleteSubmission):
		util.Error(ctx, 422, err.Error())
	case errors.Is(err, scoring.ErrConfiguration), errors.Is(err, scoring.ErrIntegrity):
		util.LogInternalError(ctx, err)
	case errors.Is(err, util.ErrInstrumentNotFound), errors.Is(err, util.ErrInstrumentUnpublished):
		util.NotFound(ctx)
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// Submit godoc
// @Summary 提交量表
// @Description 整单原子提交：计分 → 聚合 → 风险分级全部通过才落库
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.SubmitAssessmentRequest true "量表作答"
// @Success 201 {object} util.Response{data=service.AssessmentResultResponse} "提交成功"
// @Failure 422 {object} util.Response "必答题未答完"
// @Failure 404 {object} util.Response "量表不存在或未发布"
// @Router /api/assessments [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Submit(claims.UserID, req)
	if err != nil {
		scoringError(ctx, err)
		return
	}

	c.DashboardService.InvalidateTrend(ctx.Request.Context(), claims.UserID)
	c.ActivityService.Record(claims.UserID, "assessment_submitted", gin.H{
		"instrument": result.Instrument,
		"riskLevel":  result.RiskLevel,
	})

	util.Created(ctx, result)
}

// History godoc
// @Summary 我的测评历史
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param instrumentId query int false "按量表筛选"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/assessments [get]
func (c *AssessmentController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	instrumentID, _ := strconv.ParseUint(ctx.Query("instrumentId"), 10, 32)
	page, limit := pagination(ctx)

	submissions, total, err := c.AssessmentService.History(claims.UserID, uint(instrumentID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// GetSubmission godoc
// @Summary 单次提交详情
// @Description 学生只能看自己的，辅导员/管理员可看全部
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response{data=model.AssessmentSubmission} "成功"
// @Failure 403 {object} util.Response "无权查看"
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) GetSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "提交ID无效")
		return
	}

	submission, err := c.AssessmentService.GetSubmission(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	if submission.UserID != claims.UserID && claims.Role == model.Student {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, submission)
}

// Trajectory godoc
// @Summary 测评得分走势
// @Description 对同一量表的历史得分做回归分析，判断改善/恶化/平稳
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param instrumentId path int true "量表ID"
// @Success 200 {object} util.Response{data=service.TrajectoryResponse} "成功"
// @Router /api/assessments/trajectory/{instrumentId} [get]
func (c *AssessmentController) Trajectory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	instrumentID, err := strconv.ParseUint(ctx.Param("instrumentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "量表ID无效")
		return
	}

	resp, err := c.AssessmentService.Trajectory(claims.UserID, uint(instrumentID))
	if err != nil {
		scoringError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// Screen godoc
// @Summary 两题快速筛查
// @Description PHQ-2 / GAD-2 式筛查，小分达到分界线时建议完成完整量表，不落库
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.ScreenRequest true "前两题作答"
// @Success 200 {object} util.Response{data=service.ScreenResponse} "成功"
// @Router /api/assessments/screen [post]
func (c *AssessmentController) Screen(ctx *gin.Context) {
	var req service.ScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AssessmentService.Screen(req)
	if err != nil {
		scoringError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// ListAll godoc
// @Summary 全部测评提交（辅导员端）
// @Tags 测评管理
// @Produce  json
// @Security BearerAuth
// @Param instrumentId query int false "按量表筛选"
// @Param riskLevel query string false "按风险等级筛选"
// @Param student query string false "按学生姓名/学号搜索"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/counselor/assessments [get]
func (c *AssessmentController) ListAll(ctx *gin.Context) {
	instrumentID, _ := strconv.ParseUint(ctx.Query("instrumentId"), 10, 32)
	page, limit := pagination(ctx)

	submissions, total, err := c.AssessmentService.ListAll(page, limit, uint(instrumentID), ctx.Query("riskLevel"), ctx.Query("student"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submissions": submissions,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// pagination 解析分页参数，page 从 1 开始，limit 上限 100
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
