package timeframe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/logger"
)

// OpenFrame starts displaying a coupon in a slot. A zero startAt means now.
func (uc *DefaultTimeFrameUsecase) OpenFrame(ctx context.Context, slotID, couponID string, startAt time.Time) (*domain.TimeFrame, error) {
	if startAt.IsZero() {
		startAt = time.Now().UTC()
	}

	frame := &domain.TimeFrame{
		ID:       uuid.New().String(),
		SlotID:   slotID,
		CouponID: couponID,
		StartAt:  startAt,
		Window:   domain.OpenWindow(),
	}

	var siteID int64
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		slot, err := tx.SlotForUpdate(slotID)
		if err != nil {
			return err
		}
		siteID = slot.SiteID
		siblings, err := tx.FramesBySlot(slotID)
		if err != nil {
			return err
		}
		if err := ValidateFrame(slot, frame, siblings); err != nil {
			return err
		}
		return tx.InsertFrame(frame)
	})
	if err != nil {
		if rule := domain.ViolatedRule(err); rule != "" && uc.Metrics != nil {
			uc.Metrics.RecordFrameRejected(rule)
		}
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordFrameOpened(siteID)
	}
	if uc.EventLog != nil {
		if err := uc.EventLog.LogFrameEvent(ctx, logger.FrameEvent{
			FrameID:   frame.ID,
			SlotID:    slotID,
			CouponID:  couponID,
			Action:    logger.FrameActionOpened,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			slog.Error("failed to log frame opened event", "frame_id", frame.ID, "error", err.Error())
		}
	}
	slog.Info("time frame opened", "frame_id", frame.ID, "slot_id", slotID, "coupon_id", couponID)
	return frame, nil
}
