package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/mappers"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTimeFrameRepository struct {
	DB *gorm.DB
}

func NewDefaultTimeFrameRepository(db *gorm.DB) *DefaultTimeFrameRepository {
	return &DefaultTimeFrameRepository{DB: db}
}

func (r *DefaultTimeFrameRepository) GetFrameByID(ctx context.Context, frameID string) (*domain.TimeFrame, error) {
	var model models.SlotTimeFrameModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", frameID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mappers.ToDomainTimeFrame(&model), nil
}

func (r *DefaultTimeFrameRepository) ListFramesBySlot(ctx context.Context, slotID string) ([]*domain.TimeFrame, error) {
	var frameModels []models.SlotTimeFrameModel
	err := r.DB.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("start_datetime").
		Find(&frameModels).Error
	if err != nil {
		return nil, err
	}
	frames := make([]*domain.TimeFrame, len(frameModels))
	for i, frameModel := range frameModels {
		frames[i] = mappers.ToDomainTimeFrame(&frameModel)
	}
	return frames, nil
}

func (r *DefaultTimeFrameRepository) LatestFrameBySlot(ctx context.Context, slotID string) (*domain.TimeFrame, error) {
	var model models.SlotTimeFrameModel
	err := r.DB.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("start_datetime DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainTimeFrame(&model), nil
}

func (r *DefaultTimeFrameRepository) OpenFrameBySlot(ctx context.Context, slotID string) (*domain.TimeFrame, error) {
	var model models.SlotTimeFrameModel
	err := r.DB.WithContext(ctx).
		Where("slot_id = ? AND end_datetime IS NULL", slotID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainTimeFrame(&model), nil
}

func (r *DefaultTimeFrameRepository) HasActiveFrame(ctx context.Context, slotID string, now time.Time) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.SlotTimeFrameModel{}).
		Where("slot_id = ? AND start_datetime <= ? AND (end_datetime IS NULL OR end_datetime > ?)", slotID, now, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
