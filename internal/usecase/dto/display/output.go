package displaydto

import "time"

// TurnOnOutput reports where a coupon went live. PurchaseRequired means
// every family of the business is full; nothing changed and the caller
// decides what to sell.
type TurnOnOutput struct {
	PurchaseRequired bool
	SlotID           string
	FrameID          string
	ExpirationDate   time.Time
}
