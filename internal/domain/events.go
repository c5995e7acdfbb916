package domain

import (
	"encoding/json"
	"time"
)

// CouponEventsTopic carries display lifecycle events. The email gateway and
// reporting jobs consume it; this service only produces.
const CouponEventsTopic = "coupon-events"

const (
	EventCouponPublished = "coupon.published"
	EventFrameClosed     = "frame.closed"
	EventSlotRenewed     = "slot.renewed"
)

// SlotEvent is the wire form of a display lifecycle event.
type SlotEvent struct {
	EventType  string    `json:"event_type"`
	SlotID     string    `json:"slot_id"`
	BusinessID string    `json:"business_id"`
	SiteID     int64     `json:"site_id"`
	CouponID   string    `json:"coupon_id,omitempty"`
	FrameID    string    `json:"frame_id,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AsMessage marshals the event keyed by business for partition affinity.
func (e SlotEvent) AsMessage() (Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return Message{}, err
	}
	return Message{Key: []byte(e.BusinessID), Value: value}, nil
}
