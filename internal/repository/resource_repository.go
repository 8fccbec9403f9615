package repository

import (
	"campus_wellness_backend/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(res *model.Resource) error {
	return r.DB.Create(res).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.Resource, error) {
	var res model.Resource
	err := r.DB.First(&res, id).Error
	return &res, err
}

func (r *ResourceRepository) Update(res *model.Resource) error {
	return r.DB.Save(res).Error
}

func (r *ResourceRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Resource{}, id).Error
}

func (r *ResourceRepository) List(page, limit int, category, kind string, publishedOnly bool) ([]model.Resource, int64, error) {
	var rs []model.Resource
	var total int64

	query := r.DB.Model(&model.Resource{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rs).Error
	return rs, total, err
}
