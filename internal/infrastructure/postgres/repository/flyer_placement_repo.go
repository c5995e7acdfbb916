package repository

import (
	"context"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultFlyerPlacementRepository struct {
	DB *gorm.DB
}

func NewDefaultFlyerPlacementRepository(db *gorm.DB) *DefaultFlyerPlacementRepository {
	return &DefaultFlyerPlacementRepository{DB: db}
}

func (r *DefaultFlyerPlacementRepository) CreatePlacement(ctx context.Context, placement *domain.FlyerPlacement) error {
	model := models.FlyerPlacementModel{
		ID:       placement.ID,
		SlotID:   placement.SlotID,
		SiteID:   placement.SiteID,
		SendDate: placement.SendDate,
	}
	return r.DB.WithContext(ctx).Create(&model).Error
}

func (r *DefaultFlyerPlacementRepository) HasPlacements(ctx context.Context, slotID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.FlyerPlacementModel{}).
		Where("slot_id = ?", slotID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
