package models

import "time"

type CouponModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	BusinessID     string `gorm:"index:idx_coupon_business"`
	Code           string `gorm:"uniqueIndex:idx_coupon_code"`
	ExpirationDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CouponModel) TableName() string {
	return "coupons"
}
