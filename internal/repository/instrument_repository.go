package repository

import (
	"campus_wellness_backend/internal/model"

	"gorm.io/gorm"
)

type InstrumentRepository struct {
	DB *gorm.DB
}

func NewInstrumentRepository(db *gorm.DB) *InstrumentRepository {
	return &InstrumentRepository{DB: db}
}

func (r *InstrumentRepository) Create(inst *model.Instrument) error {
	return r.DB.Create(inst).Error
}

func (r *InstrumentRepository) Update(inst *model.Instrument) error {
	return r.DB.Save(inst).Error
}

func (r *InstrumentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("instrument_id = ?", id).Delete(&model.InstrumentQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("instrument_id = ?", id).Delete(&model.InstrumentThreshold{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Instrument{}, id).Error
	})
}

// FindByID 加载量表及其题目和阈值表，题目按 order 排序，阈值按分值档升序
func (r *InstrumentRepository) FindByID(id uint) (*model.Instrument, error) {
	var inst model.Instrument
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		Preload("Thresholds", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, min_score asc")
		}).
		First(&inst, id).Error
	return &inst, err
}

func (r *InstrumentRepository) FindByCode(code string) (*model.Instrument, error) {
	var inst model.Instrument
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		Preload("Thresholds", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, min_score asc")
		}).
		Where("code = ?", code).
		First(&inst).Error
	return &inst, err
}

func (r *InstrumentRepository) List(publishedOnly bool) ([]model.Instrument, error) {
	var insts []model.Instrument
	query := r.DB.Model(&model.Instrument{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("created_at asc").Find(&insts).Error
	return insts, err
}

func (r *InstrumentRepository) CreateQuestion(q *model.InstrumentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *InstrumentRepository) FindQuestionByID(id uint) (*model.InstrumentQuestion, error) {
	var q model.InstrumentQuestion
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *InstrumentRepository) UpdateQuestion(q *model.InstrumentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *InstrumentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.InstrumentQuestion{}, id).Error
}

// ReplaceThresholds 整表替换阈值：阈值表必须作为整体校验，逐行修改没有意义
func (r *InstrumentRepository) ReplaceThresholds(instrumentID uint, thresholds []model.InstrumentThreshold) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("instrument_id = ?", instrumentID).Delete(&model.InstrumentThreshold{}).Error; err != nil {
			return err
		}
		for i := range thresholds {
			thresholds[i].InstrumentID = instrumentID
			thresholds[i].Order = i + 1
			if err := tx.Create(&thresholds[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
