package service

import (
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/repository"
	"campus_wellness_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResourceService 自助资源库。文章直接存正文；
// 冥想音频/减压视频先落临时文件探测时长，再交给存储层。
type ResourceService struct {
	ResourceRepo *repository.ResourceRepository
	Storage      *StorageService
	Logger       *zap.Logger
}

func NewResourceService(resourceRepo *repository.ResourceRepository, storage *StorageService, logger *zap.Logger) *ResourceService {
	return &ResourceService{
		ResourceRepo: resourceRepo,
		Storage:      storage,
		Logger:       logger,
	}
}

type ResourceRequest struct {
	Title       string `json:"title" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Kind        string `json:"kind" binding:"required"` // article, audio, video
	Description string `json:"description"`
	Content     string `json:"content"` // article 正文
	IsPublished bool   `json:"isPublished"`
}

func (s *ResourceService) List(page, limit int, category, kind string, publishedOnly bool) ([]model.Resource, int64, error) {
	return s.ResourceRepo.List(page, limit, category, kind, publishedOnly)
}

func (s *ResourceService) Get(id uint, requirePublished bool) (*model.Resource, error) {
	res, err := s.ResourceRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrResourceNotFound
		}
		return nil, err
	}
	if requirePublished && !res.IsPublished {
		return nil, util.ErrResourceNotFound
	}
	return res, nil
}

func (s *ResourceService) Create(creatorID uint, req ResourceRequest) (*model.Resource, error) {
	if req.Kind == "article" && req.Content == "" {
		return nil, errors.New("文章资源必须包含正文")
	}

	res := &model.Resource{
		Title:       req.Title,
		Category:    req.Category,
		Kind:        req.Kind,
		Description: req.Description,
		Content:     req.Content,
		IsPublished: req.IsPublished,
		CreatorID:   creatorID,
	}
	if err := s.ResourceRepo.Create(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) Update(id uint, req ResourceRequest) (*model.Resource, error) {
	res, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}

	res.Title = req.Title
	res.Category = req.Category
	res.Kind = req.Kind
	res.Description = req.Description
	res.Content = req.Content
	res.IsPublished = req.IsPublished

	if err := s.ResourceRepo.Update(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) Delete(id uint) error {
	if _, err := s.Get(id, false); err != nil {
		return err
	}
	return s.ResourceRepo.Delete(id)
}

// AttachMedia 为音视频资源上传媒体文件。localPath 指向控制器保存的临时文件，
// 探测不到时长不算失败，时长记 0。
func (s *ResourceService) AttachMedia(ctx context.Context, id uint, originalName, localPath string) (*model.Resource, error) {
	res, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}
	if res.Kind != "audio" && res.Kind != "video" {
		return nil, errors.New("只有音频/视频资源可以上传媒体文件")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	allowed := false
	for _, e := range util.AllowedMediaExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("不支持的媒体格式: %s", ext)
	}

	duration := 0
	if info, err := util.ProbeMedia(localPath); err == nil {
		duration = int(math.Round(info.Duration))
	} else {
		s.Logger.Warn("媒体时长探测失败", zap.Uint("resourceID", id), zap.Error(err))
	}

	filename := fmt.Sprintf("resources/%s%s", uuid.New().String(), ext)
	contentType := util.MimeOctetStream
	if f, err := os.Open(localPath); err == nil {
		if mime, err := util.ValidateMimeType(f, []string{util.MimeAudio, util.MimeVideo}); err == nil {
			contentType = mime
		}
		f.Close()
	}

	url, err := s.Storage.UploadFile(ctx, filename, localPath, contentType)
	if err != nil {
		return nil, err
	}

	res.URL = url
	res.Duration = duration
	if err := s.ResourceRepo.Update(res); err != nil {
		return nil, err
	}
	return res, nil
}
