package timeframe

import (
	"context"
	"log/slog"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/logger"
)

// CloseFrame ends an open time frame. A zero endAt means now. Once closed,
// the frame's interval is immutable history.
func (uc *DefaultTimeFrameUsecase) CloseFrame(ctx context.Context, frameID string, endAt time.Time) (*domain.TimeFrame, error) {
	if endAt.IsZero() {
		endAt = time.Now().UTC()
	}

	var closed *domain.TimeFrame
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		frame, err := tx.FrameByID(frameID)
		if err != nil {
			return err
		}
		slot, err := tx.SlotForUpdate(frame.SlotID)
		if err != nil {
			return err
		}
		// Re-read under the slot lock so a concurrent close is visible.
		frame, err = tx.FrameByID(frameID)
		if err != nil {
			return err
		}
		var frameErr error
		closed, frameErr = closeFrameInTx(tx, slot, frame, endAt)
		return frameErr
	})
	if err != nil {
		if rule := domain.ViolatedRule(err); rule != "" && uc.Metrics != nil {
			uc.Metrics.RecordFrameRejected(rule)
		}
		return nil, err
	}

	uc.afterClose(ctx, closed)
	return closed, nil
}

// CloseOpenFrame closes the open frame of a slot, if any. By rule a slot
// has at most one open frame.
func (uc *DefaultTimeFrameUsecase) CloseOpenFrame(ctx context.Context, slotID string, endAt time.Time) (*domain.TimeFrame, error) {
	if endAt.IsZero() {
		endAt = time.Now().UTC()
	}

	var closed *domain.TimeFrame
	err := uc.SlotRepo.InTx(ctx, func(tx domain.SlotTx) error {
		slot, err := tx.SlotForUpdate(slotID)
		if err != nil {
			return err
		}
		frame, err := tx.OpenFrame(slotID)
		if err != nil {
			return err
		}
		if frame == nil {
			return nil
		}
		var frameErr error
		closed, frameErr = closeFrameInTx(tx, slot, frame, endAt)
		return frameErr
	})
	if err != nil {
		return nil, err
	}
	if closed != nil {
		uc.afterClose(ctx, closed)
	}
	return closed, nil
}

func closeFrameInTx(tx domain.SlotTx, slot *domain.Slot, frame *domain.TimeFrame, endAt time.Time) (*domain.TimeFrame, error) {
	if !frame.Window.IsOpen() {
		return nil, domain.ErrFrameAlreadyClosed
	}
	if !endAt.After(frame.StartAt) {
		return nil, &domain.IntervalConflict{
			Rule:    domain.RuleFrameRange,
			Message: "a time frame cannot end on or before its start",
		}
	}
	frame.Window = domain.ClosedWindow(endAt)
	siblings, err := tx.FramesBySlot(slot.ID)
	if err != nil {
		return nil, err
	}
	if err := ValidateFrame(slot, frame, siblings); err != nil {
		return nil, err
	}
	if err := tx.UpdateFrame(frame); err != nil {
		return nil, err
	}
	return frame, nil
}

func (uc *DefaultTimeFrameUsecase) afterClose(ctx context.Context, frame *domain.TimeFrame) {
	if uc.Metrics != nil {
		uc.Metrics.RecordFrameClosed()
	}
	if uc.EventLog != nil {
		if err := uc.EventLog.LogFrameEvent(ctx, logger.FrameEvent{
			FrameID:   frame.ID,
			SlotID:    frame.SlotID,
			CouponID:  frame.CouponID,
			Action:    logger.FrameActionClosed,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			slog.Error("failed to log frame closed event", "frame_id", frame.ID, "error", err.Error())
		}
	}
	slog.Info("time frame closed", "frame_id", frame.ID, "slot_id", frame.SlotID)
}
