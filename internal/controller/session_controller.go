package controller

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService  *service.SessionService
	UserService     *service.UserService
	ActivityService *service.ActivityService
}

func NewSessionController(
	sessionService *service.SessionService,
	userService *service.UserService,
	activityService *service.ActivityService,
) *SessionController {
	return &SessionController{
		SessionService:  sessionService,
		UserService:     userService,
		ActivityService: activityService,
	}
}

func sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionSlotTaken):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, util.ErrSessionNotCancellable):
		util.Error(ctx, 409, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// ListCounselors godoc
// @Summary 辅导员列表
// @Description 学生预约时选择辅导员
// @Tags 预约
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/counselors [get]
func (c *SessionController) ListCounselors(ctx *gin.Context) {
	counselors, err := c.UserService.GetCounselors()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, counselors)
}

// Book godoc
// @Summary 预约咨询
// @Description 同一辅导员同一时段只能有一个有效预约
// @Tags 预约
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.BookSessionRequest true "预约信息"
// @Success 201 {object} util.Response{data=model.CounselingSession} "预约成功"
// @Failure 409 {object} util.Response "时段已被占用"
// @Router /api/sessions [post]
func (c *SessionController) Book(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BookSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Book(claims.UserID, req)
	if err != nil {
		sessionError(ctx, err)
		return
	}

	c.ActivityService.Record(claims.UserID, "session_booked", gin.H{"sessionId": session.ID})
	util.Created(ctx, session)
}

// ListMine godoc
// @Summary 我的预约
// @Tags 预约
// @Produce  json
// @Security BearerAuth
// @Param upcoming query bool false "只看未来的"
// @Success 200 {object} util.Response{data=[]model.CounselingSession} "成功"
// @Router /api/sessions [get]
func (c *SessionController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.SessionService.ListForStudent(claims.UserID, ctx.Query("upcoming") == "true")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// Cancel godoc
// @Summary 取消预约
// @Description 只能在开始前取消自己的预约
// @Tags 预约
// @Produce  json
// @Security BearerAuth
// @Param id path string true "预约ID"
// @Success 200 {object} util.Response{data=model.CounselingSession} "成功"
// @Failure 409 {object} util.Response "已无法取消"
// @Router /api/sessions/{id}/cancel [put]
func (c *SessionController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.Cancel(ctx.Param("id"), claims.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// CounselorSchedule godoc
// @Summary 辅导员日程
// @Description 默认未来 7 天
// @Tags 预约
// @Produce  json
// @Security BearerAuth
// @Param from query string false "起始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]model.CounselingSession} "成功"
// @Router /api/counselor/sessions [get]
func (c *SessionController) CounselorSchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	from := time.Now().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if v := ctx.Query("from"); v != "" {
		if t, err := time.Parse(util.DateFormat, v); err == nil {
			from = t
		}
	}
	if v := ctx.Query("to"); v != "" {
		if t, err := time.Parse(util.DateFormat, v); err == nil {
			to = t.AddDate(0, 0, 1)
		}
	}

	sessions, err := c.SessionService.ListForCounselor(claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

type SessionStatusRequest struct {
	Status model.SessionStatus `json:"status" binding:"required"`
	Notes  string              `json:"notes"`
}

// UpdateStatus godoc
// @Summary 更新预约状态
// @Description 辅导员确认/完成/取消自己的预约，可附会后记录
// @Tags 预约
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "预约ID"
// @Param body body SessionStatusRequest true "状态与记录"
// @Success 200 {object} util.Response{data=model.CounselingSession} "成功"
// @Router /api/counselor/sessions/{id}/status [put]
func (c *SessionController) UpdateStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.UpdateStatus(ctx.Param("id"), claims.UserID, req.Status, req.Notes)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}
