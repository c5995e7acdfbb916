package domain

import (
	"context"
	"time"
)

// TimeFrameRepository is the read side of the time frame history. Writes
// only happen inside SlotRepository.InTx.
type TimeFrameRepository interface {
	GetFrameByID(ctx context.Context, frameID string) (*TimeFrame, error)
	ListFramesBySlot(ctx context.Context, slotID string) ([]*TimeFrame, error)
	// LatestFrameBySlot returns the most recently opened frame of the slot,
	// or nil when the slot has no frames.
	LatestFrameBySlot(ctx context.Context, slotID string) (*TimeFrame, error)
	// OpenFrameBySlot returns the slot's open frame, or nil.
	OpenFrameBySlot(ctx context.Context, slotID string) (*TimeFrame, error)
	// HasActiveFrame reports whether some frame of the slot covers now.
	HasActiveFrame(ctx context.Context, slotID string, now time.Time) (bool, error)
}

// FlyerPlacementRepository exposes the scheduling records that freeze a
// slot's site once any exist.
type FlyerPlacementRepository interface {
	CreatePlacement(ctx context.Context, placement *FlyerPlacement) error
	HasPlacements(ctx context.Context, slotID string) (bool, error)
}

// FlyerPlacement is an external scheduling record. Only its existence
// matters to this engine.
type FlyerPlacement struct {
	ID       string
	SlotID   string
	SiteID   int64
	SendDate time.Time
}
