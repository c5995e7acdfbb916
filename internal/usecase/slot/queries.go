package slot

import (
	"context"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
)

func (uc *DefaultSlotUsecase) GetSlotByID(ctx context.Context, slotID string) (*domain.Slot, error) {
	return uc.SlotRepo.GetSlotByID(ctx, slotID)
}

// HasActiveTimeFrame reports whether some frame of the slot covers this
// moment.
func (uc *DefaultSlotUsecase) HasActiveTimeFrame(ctx context.Context, slotID string) (bool, error) {
	return uc.FrameRepo.HasActiveFrame(ctx, slotID, time.Now())
}

// GetActiveCoupon resolves the coupon a slot should currently display: the
// coupon of the most recently opened frame, provided it has not expired.
// A slot with no frames, or whose latest coupon has expired, displays
// nothing.
func (uc *DefaultSlotUsecase) GetActiveCoupon(ctx context.Context, slotID string) (*domain.Coupon, error) {
	frame, err := uc.FrameRepo.LatestFrameBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, nil
	}
	coupon, err := uc.CouponRepo.GetCouponByID(ctx, frame.CouponID)
	if err != nil {
		return nil, err
	}
	if coupon.Expired(time.Now()) {
		return nil, nil
	}
	return coupon, nil
}
