package controller

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService     *service.UserService
	ActivityService *service.ActivityService
}

func NewUserController(userService *service.UserService, activityService *service.ActivityService) *UserController {
	return &UserController{
		UserService:     userService,
		ActivityService: activityService,
	}
}

// ListStudents godoc
// @Summary 学生列表
// @Description 辅导员/管理员查看，支持姓名/学号搜索
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param search query string false "姓名或学号"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/counselor/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	page, limit := pagination(ctx)

	students, total, err := c.UserService.GetStudents(page, limit, ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"students": students,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=counselor admin"`
}

// CreateStaff godoc
// @Summary 创建辅导员/管理员账号
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body CreateStaffRequest true "账号信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Router /api/admin/users [post]
func (c *UserController) CreateStaff(ctx *gin.Context) {
	var req CreateStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.UserRole(req.Role),
	}
	if err := c.UserService.CreateStaff(user, req.Password); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

type DisableUserRequest struct {
	Disabled bool `json:"disabled"`
}

// DisableUser godoc
// @Summary 禁用/启用账号
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param body body DisableUserRequest true "禁用状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) DisableUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "用户ID无效")
		return
	}

	var req DisableUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DisableUser(uint(id), req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"updated": true})
}

// ResetPassword godoc
// @Summary 重置用户密码
// @Description 返回一次性临时密码
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/users/{id}/reset-password [put]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "用户ID无效")
		return
	}

	tempPassword, err := c.UserService.ResetPassword(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"tempPassword": tempPassword})
}

// UsageStats godoc
// @Summary 使用情况统计
// @Description 近 N 天各类行为次数
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param days query int false "统计天数，默认 7"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/usage [get]
func (c *UserController) UsageStats(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "7"))

	stats, err := c.ActivityService.UsageStats(days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type logActivityRequest struct {
	Action string      `json:"action" binding:"required"`
	Detail interface{} `json:"detail"`
}

// LogActivity godoc
// @Summary 上报前端行为事件
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body logActivityRequest true "行为事件"
// @Success 200 {object} util.Response "成功"
// @Router /api/activities/log [post]
func (c *UserController) LogActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req logActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请求参数错误: "+err.Error())
		return
	}

	c.ActivityService.Record(claims.UserID, req.Action, req.Detail)
	util.Success(ctx, nil)
}

// StudentActivity godoc
// @Summary 学生行为日志
// @Tags 用户管理
// @Produce  json
// @Security BearerAuth
// @Param id path int true "学生ID"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/counselor/students/{id}/activity [get]
func (c *UserController) StudentActivity(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "学生ID无效")
		return
	}

	page, limit := pagination(ctx)
	logs, total, err := c.ActivityService.ListByUser(uint(id), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
