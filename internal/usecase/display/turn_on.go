package display

import (
	"context"
	"log/slog"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	displaydto "github.com/tencoupons/slot-service/internal/usecase/dto/display"
)

// TurnOn puts a coupon on display for a business. It reuses an idle family
// member or allocates a new child generation; when every family is full it
// reports purchase-required and changes nothing. An expired coupon gets
// its expiration date bumped to the platform default before going live.
func (uc *DefaultDisplayUsecase) TurnOn(ctx context.Context, input *displaydto.TurnOnInput) (*displaydto.TurnOnOutput, error) {
	if err := uc.requireBusinessOwner(ctx, input.AdvertiserID, input.BusinessID); err != nil {
		return nil, err
	}
	if err := uc.requireCouponOwner(ctx, input.AdvertiserID, input.CouponID); err != nil {
		return nil, err
	}

	avail, err := uc.SlotUsecase.CheckAvailableFamilySlot(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if avail.ParentSlot == nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordPurchaseRequired()
		}
		slog.Info("display on needs purchase", "business_id", input.BusinessID, "coupon_id", input.CouponID)
		return &displaydto.TurnOnOutput{PurchaseRequired: true}, nil
	}

	coupon, err := uc.CouponRepo.GetCouponByID(ctx, input.CouponID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	expiration := coupon.ExpirationDate
	if coupon.Expired(now) {
		expiration = domain.DefaultExpirationDate(now)
		if err := uc.CouponRepo.BumpExpiration(ctx, coupon.ID, expiration); err != nil {
			return nil, err
		}
		slog.Info("expired coupon bumped", "coupon_id", coupon.ID, "expiration_date", expiration.Format("2006-01-02"))
	}

	slotUsed, frame, err := uc.SlotUsecase.PublishCoupon(ctx, avail, input.CouponID)
	if err != nil {
		return nil, err
	}

	uc.publishEvent(domain.SlotEvent{
		EventType:  domain.EventCouponPublished,
		SlotID:     slotUsed.ID,
		BusinessID: slotUsed.BusinessID,
		SiteID:     slotUsed.SiteID,
		CouponID:   input.CouponID,
		FrameID:    frame.ID,
		OccurredAt: time.Now().UTC(),
	})

	slog.Info("display turned on", "business_id", input.BusinessID, "coupon_id", input.CouponID, "slot_id", slotUsed.ID)
	return &displaydto.TurnOnOutput{
		SlotID:         slotUsed.ID,
		FrameID:        frame.ID,
		ExpirationDate: expiration,
	}, nil
}
