package models

import "time"

// BusinessModel is the ownership edge between an advertiser account and a
// business. Only the edge matters here; the business profile lives in
// another service.
type BusinessModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	AdvertiserID string `gorm:"index:idx_business_advertiser"`
	CreatedAt    time.Time
}

func (BusinessModel) TableName() string {
	return "businesses"
}
