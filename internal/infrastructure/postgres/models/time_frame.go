package models

import "time"

// SlotTimeFrameModel persists one display interval. A NULL end_datetime
// means the frame is still open.
type SlotTimeFrameModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	SlotID        string `gorm:"type:uuid;index:idx_frame_slot"`
	CouponID      string `gorm:"type:uuid;index:idx_frame_coupon"`
	StartDatetime time.Time
	EndDatetime   *time.Time
	CreatedAt     time.Time
}

func (SlotTimeFrameModel) TableName() string {
	return "slot_time_frames"
}
