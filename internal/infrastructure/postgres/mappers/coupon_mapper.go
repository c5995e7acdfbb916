package mappers

import (
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
)

func ToDomainCoupon(model *models.CouponModel) *domain.Coupon {
	return &domain.Coupon{
		ID:             model.ID,
		BusinessID:     model.BusinessID,
		Code:           model.Code,
		ExpirationDate: model.ExpirationDate,
	}
}

func ToGORMCoupon(coupon *domain.Coupon) *models.CouponModel {
	return &models.CouponModel{
		ID:             coupon.ID,
		BusinessID:     coupon.BusinessID,
		Code:           coupon.Code,
		ExpirationDate: coupon.ExpirationDate,
	}
}
