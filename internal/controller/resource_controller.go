package controller

import (
	"campus_wellness_backend/internal/service"
	"campus_wellness_backend/internal/util"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
	ActivityService *service.ActivityService
}

func NewResourceController(resourceService *service.ResourceService, activityService *service.ActivityService) *ResourceController {
	return &ResourceController{
		ResourceService: resourceService,
		ActivityService: activityService,
	}
}

// List godoc
// @Summary 资源列表
// @Description 学生只看已发布的，支持按分类和类型筛选
// @Tags 资源
// @Produce  json
// @Security BearerAuth
// @Param category query string false "分类"
// @Param kind query string false "article/audio/video"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/resources [get]
func (c *ResourceController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)

	resources, total, err := c.ResourceService.List(page, limit, ctx.Query("category"), ctx.Query("kind"), true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"resources": resources,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// Get godoc
// @Summary 资源详情
// @Tags 资源
// @Produce  json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Success 200 {object} util.Response{data=model.Resource} "成功"
// @Failure 404 {object} util.Response "资源不存在"
// @Router /api/resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "资源ID无效")
		return
	}

	res, err := c.ResourceService.Get(uint(id), true)
	if err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.ActivityService.Record(claims.UserID, "resource_viewed", gin.H{"resourceId": res.ID})
	util.Success(ctx, res)
}

// --- 管理端 ---

// AdminList godoc
// @Summary 全部资源（含未发布）
// @Tags 资源管理
// @Produce  json
// @Security BearerAuth
// @Param category query string false "分类"
// @Param kind query string false "article/audio/video"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/resources [get]
func (c *ResourceController) AdminList(ctx *gin.Context) {
	page, limit := pagination(ctx)

	resources, total, err := c.ResourceService.List(page, limit, ctx.Query("category"), ctx.Query("kind"), false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"resources": resources,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// Create godoc
// @Summary 创建资源
// @Tags 资源管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param body body service.ResourceRequest true "资源信息"
// @Success 201 {object} util.Response{data=model.Resource} "创建成功"
// @Router /api/admin/resources [post]
func (c *ResourceController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.ResourceService.Create(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, res)
}

// Update godoc
// @Summary 更新资源
// @Tags 资源管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Param body body service.ResourceRequest true "资源信息"
// @Success 200 {object} util.Response{data=model.Resource} "成功"
// @Router /api/admin/resources/{id} [put]
func (c *ResourceController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "资源ID无效")
		return
	}

	var req service.ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.ResourceService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, res)
}

// Delete godoc
// @Summary 删除资源
// @Tags 资源管理
// @Produce  json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "资源ID无效")
		return
	}

	if err := c.ResourceService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadMedia godoc
// @Summary 上传媒体文件
// @Description 先落临时文件探测时长，再交给存储层
// @Tags 资源管理
// @Accept multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param id path int true "资源ID"
// @Param file formData file true "音频/视频文件"
// @Success 200 {object} util.Response{data=model.Resource} "成功"
// @Failure 400 {object} util.Response "不支持的媒体格式"
// @Router /api/admin/resources/{id}/media [post]
func (c *ResourceController) UploadMedia(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "资源ID无效")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "media file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%d_%s", id, filepath.Base(file.Filename)))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	res, err := c.ResourceService.AttachMedia(ctx.Request.Context(), uint(id), file.Filename, tmpPath)
	if err != nil {
		if errors.Is(err, util.ErrResourceNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, res)
}
