package slot

import (
	"context"
	"log/slog"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
)

// RenewSlot extends a slot by one month-aware renewal period and cascades
// the new end date through its lineage children.
func (uc *DefaultSlotUsecase) RenewSlot(ctx context.Context, slotID string) (*domain.Slot, error) {
	slot, err := uc.applyEndDate(ctx, slotID, time.Time{})
	if err != nil {
		return nil, err
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordRenewal(slot.SiteID, slot.IsAutorenew)
	}
	slog.Info("slot renewed", "slot_id", slot.ID, "end_date", slot.EndDate.Format("2006-01-02"))
	return slot, nil
}

// ChangeEndDate sets an explicit end date, cascading to children the same
// way a renewal does.
func (uc *DefaultSlotUsecase) ChangeEndDate(ctx context.Context, slotID string, newEnd time.Time) (*domain.Slot, error) {
	return uc.applyEndDate(ctx, slotID, domain.DateOf(newEnd))
}

// applyEndDate runs the end date change as one transaction: validate the
// slot, compute the affected children up front, re-validate every one of
// them, then write. Any violation rolls the whole thing back. A zero
// newEnd means "one renewal period past the current end date".
func (uc *DefaultSlotUsecase) applyEndDate(ctx context.Context, slotID string, newEnd time.Time) (*domain.Slot, error) {
	var updated *domain.Slot
	var fanout int
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		slot, err := tx.SlotForUpdate(slotID)
		if err != nil {
			return err
		}
		original := *slot

		if newEnd.IsZero() {
			newEnd = domain.NextEndDate(slot.EndDate)
		}
		changed := !newEnd.Equal(slot.EndDate)
		slot.EndDate = newEnd

		frames, err := tx.FramesBySlot(slot.ID)
		if err != nil {
			return err
		}
		hasPlacements, err := tx.HasFlyerPlacements(slot.ID)
		if err != nil {
			return err
		}
		if err := CheckSlot(slot, &original, frames, hasPlacements); err != nil {
			return err
		}

		if changed {
			children, err := tx.ChildrenForUpdate(slot.ID)
			if err != nil {
				return err
			}
			for _, child := range children {
				childOriginal := *child
				child.EndDate = newEnd
				childFrames, err := tx.FramesBySlot(child.ID)
				if err != nil {
					return err
				}
				if err := CheckSlot(child, &childOriginal, childFrames, false); err != nil {
					return err
				}
			}
			for _, child := range children {
				if err := tx.UpdateSlot(child); err != nil {
					return err
				}
			}
			fanout = len(children)
		}

		if err := tx.UpdateSlot(slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordCascadeFanout(fanout)
	}
	return updated, nil
}

// SetAutorenew flips the autorenew flag on a slot.
func (uc *DefaultSlotUsecase) SetAutorenew(ctx context.Context, slotID string, on bool) (*domain.Slot, error) {
	var updated *domain.Slot
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		slot, err := tx.SlotForUpdate(slotID)
		if err != nil {
			return err
		}
		slot.IsAutorenew = on
		if err := tx.UpdateSlot(slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("slot autorenew toggled", "slot_id", slotID, "is_autorenew", on)
	return updated, nil
}

// TransferSite moves a slot to another distribution site. Fails once any
// flyer placement references the slot.
func (uc *DefaultSlotUsecase) TransferSite(ctx context.Context, slotID string, siteID int64) (*domain.Slot, error) {
	var updated *domain.Slot
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		slot, err := tx.SlotForUpdate(slotID)
		if err != nil {
			return err
		}
		original := *slot
		slot.SiteID = siteID

		frames, err := tx.FramesBySlot(slot.ID)
		if err != nil {
			return err
		}
		hasPlacements, err := tx.HasFlyerPlacements(slot.ID)
		if err != nil {
			return err
		}
		if err := CheckSlot(slot, &original, frames, hasPlacements); err != nil {
			return err
		}
		if err := tx.UpdateSlot(slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		uc.recordRejection(err)
		return nil, err
	}
	return updated, nil
}
