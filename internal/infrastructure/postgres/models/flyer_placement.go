package models

import "time"

// FlyerPlacementModel records a scheduled flyer send. Any row for a slot
// freezes that slot's site.
type FlyerPlacementModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	SlotID    string `gorm:"type:uuid;index:idx_placement_slot"`
	SiteID    int64
	SendDate  time.Time
	CreatedAt time.Time
}

func (FlyerPlacementModel) TableName() string {
	return "flyer_placements"
}
