package domain

import (
	"context"
	"time"
)

// SlotRepository reads slots and runs transactional units of work against a
// slot and its time frame set. Every mutation goes through InTx so that
// invariant checks and writes, including cascaded children, commit or roll
// back as one.
type SlotRepository interface {
	GetSlotByID(ctx context.Context, slotID string) (*Slot, error)
	ListBusinessSlots(ctx context.Context, businessID string) ([]*Slot, error)
	// ListCurrentBusinessSlots returns the business's slots whose paid range
	// covers today, ordered head-first within each lineage.
	ListCurrentBusinessSlots(ctx context.Context, businessID string, today time.Time) ([]*Slot, error)
	ListChildren(ctx context.Context, parentID string) ([]*Slot, error)
	// ListExpiringAutorenew returns autorenew slots whose end date falls on
	// or before the given day.
	ListExpiringAutorenew(ctx context.Context, by time.Time) ([]*Slot, error)

	InTx(ctx context.Context, fn func(tx SlotTx) error) error
}

// SlotTx is the view of the store inside one transaction. ForUpdate reads
// take row locks so concurrent opens and cascades on the same family
// serialize.
type SlotTx interface {
	SlotForUpdate(slotID string) (*Slot, error)
	ChildrenForUpdate(parentID string) ([]*Slot, error)
	FramesBySlot(slotID string) ([]*TimeFrame, error)
	FrameByID(frameID string) (*TimeFrame, error)
	// OpenFrame returns the slot's open time frame, or nil when every frame
	// is closed.
	OpenFrame(slotID string) (*TimeFrame, error)
	HasFlyerPlacements(slotID string) (bool, error)

	InsertSlot(slot *Slot) error
	UpdateSlot(slot *Slot) error
	InsertFrame(frame *TimeFrame) error
	UpdateFrame(frame *TimeFrame) error
}
