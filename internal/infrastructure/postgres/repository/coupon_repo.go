package repository

import (
	"context"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/mappers"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

const couponCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type DefaultCouponRepository struct {
	DB      *gorm.DB
	newCode func() string
}

func NewDefaultCouponRepository(db *gorm.DB) (*DefaultCouponRepository, error) {
	newCode, err := nanoid.CustomASCII(couponCodeAlphabet, 10)
	if err != nil {
		return nil, err
	}
	return &DefaultCouponRepository{DB: db, newCode: newCode}, nil
}

func (r *DefaultCouponRepository) GetCouponByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	var model models.CouponModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", couponID).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return mappers.ToDomainCoupon(&model), nil
}

func (r *DefaultCouponRepository) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	if coupon.Code == "" {
		coupon.Code = r.newCode()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMCoupon(coupon)).Error
}

func (r *DefaultCouponRepository) BumpExpiration(ctx context.Context, couponID string, newDate time.Time) error {
	result := r.DB.WithContext(ctx).Model(&models.CouponModel{}).
		Where("id = ?", couponID).
		Update("expiration_date", newDate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
