package models

import "time"

// SlotModel persists one purchased placement. Lineage is a self reference:
// a head slot stores its own id in parent_slot_id.
type SlotModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	BusinessID   string `gorm:"index:idx_business"`
	SiteID       int64
	StartDate    time.Time `gorm:"index:idx_slot_range"`
	EndDate      time.Time `gorm:"index:idx_slot_range"`
	RenewalRate  *float64
	IsAutorenew  bool      `gorm:"index:idx_autorenew"`
	ParentSlotID string    `gorm:"type:uuid;index:idx_parent"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SlotModel) TableName() string {
	return "slots"
}
