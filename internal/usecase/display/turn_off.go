package display

import (
	"context"
	"log/slog"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	displaydto "github.com/tencoupons/slot-service/internal/usecase/dto/display"
)

// TurnOff closes the open time frame of the slot, suspending the coupon's
// display. The advertiser must own both the coupon and the slot's business,
// and the open frame must be displaying that coupon; a slot displaying
// someone else's coupon is never touched. A slot with no open frame is left
// alone; there is nothing to close and the advertiser already sees the
// coupon as down.
func (uc *DefaultDisplayUsecase) TurnOff(ctx context.Context, input *displaydto.TurnOffInput) error {
	if err := uc.requireCouponOwner(ctx, input.AdvertiserID, input.CouponID); err != nil {
		return err
	}

	slotOff, err := uc.SlotUsecase.GetSlotByID(ctx, input.SlotID)
	if err != nil {
		return err
	}
	if err := uc.requireBusinessOwner(ctx, input.AdvertiserID, slotOff.BusinessID); err != nil {
		return err
	}

	frame, err := uc.FrameUsecase.OpenSlotFrame(ctx, input.SlotID)
	if err != nil {
		return err
	}
	if frame == nil {
		slog.Warn("display off with no open frame", "slot_id", input.SlotID, "coupon_id", input.CouponID)
		return nil
	}
	if frame.CouponID != input.CouponID {
		return domain.ErrAuthorizationDenied
	}

	closed, err := uc.FrameUsecase.CloseFrame(ctx, frame.ID, time.Time{})
	if err != nil {
		return err
	}

	uc.publishEvent(domain.SlotEvent{
		EventType:  domain.EventFrameClosed,
		SlotID:     input.SlotID,
		BusinessID: slotOff.BusinessID,
		SiteID:     slotOff.SiteID,
		CouponID:   input.CouponID,
		FrameID:    closed.ID,
		OccurredAt: time.Now().UTC(),
	})

	slog.Info("display turned off", "slot_id", input.SlotID, "coupon_id", input.CouponID, "frame_id", closed.ID)
	return nil
}
