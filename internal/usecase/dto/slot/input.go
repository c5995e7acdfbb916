package slotdto

import "time"

type CreateHeadSlotInput struct {
	BusinessID  string
	SiteID      int64
	StartDate   time.Time
	EndDate     time.Time
	RenewalRate *float64
	IsAutorenew bool
}

type CreateChildSlotInput struct {
	ParentSlotID string
	StartDate    time.Time
	// EndDate defaults to the parent's end date when zero.
	EndDate time.Time
}
