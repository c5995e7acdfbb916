package repository

import (
	"context"

	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultOwnershipChecker resolves advertiser ownership through the
// businesses table. A coupon is owned through the business it belongs to.
type DefaultOwnershipChecker struct {
	DB *gorm.DB
}

func NewDefaultOwnershipChecker(db *gorm.DB) *DefaultOwnershipChecker {
	return &DefaultOwnershipChecker{DB: db}
}

func (c *DefaultOwnershipChecker) OwnsBusiness(ctx context.Context, advertiserID, businessID string) (bool, error) {
	var count int64
	err := c.DB.WithContext(ctx).Model(&models.BusinessModel{}).
		Where("id = ? AND advertiser_id = ?", businessID, advertiserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *DefaultOwnershipChecker) OwnsCoupon(ctx context.Context, advertiserID, couponID string) (bool, error) {
	var count int64
	err := c.DB.WithContext(ctx).Model(&models.CouponModel{}).
		Joins("JOIN businesses ON businesses.id = coupons.business_id").
		Where("coupons.id = ? AND businesses.advertiser_id = ?", couponID, advertiserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
