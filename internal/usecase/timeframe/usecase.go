package timeframe

import (
	"context"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/logger"
	"github.com/tencoupons/slot-service/internal/infrastructure/metrics"
)

// TimeFrameUsecase owns the only legal mutations of a time frame: opening
// and closing. Every write runs under the slot's row lock and passes the
// interval validator first.
type TimeFrameUsecase interface {
	OpenFrame(ctx context.Context, slotID, couponID string, startAt time.Time) (*domain.TimeFrame, error)
	CloseFrame(ctx context.Context, frameID string, endAt time.Time) (*domain.TimeFrame, error)
	// CloseOpenFrame closes the slot's open frame if there is one; a slot
	// with no open frame is a no-op returning nil.
	CloseOpenFrame(ctx context.Context, slotID string, endAt time.Time) (*domain.TimeFrame, error)
	JustifyFrames(ctx context.Context, frameAID, frameBID string) error
	ListSlotFrames(ctx context.Context, slotID string) ([]*domain.TimeFrame, error)
	// OpenSlotFrame returns the slot's open frame, or nil when the slot
	// is idle.
	OpenSlotFrame(ctx context.Context, slotID string) (*domain.TimeFrame, error)
}

type DefaultTimeFrameUsecase struct {
	SlotRepo  domain.SlotRepository
	FrameRepo domain.TimeFrameRepository
	EventLog  logger.FrameEventLogger
	Metrics   *metrics.SlotMetrics
}

func NewDefaultTimeFrameUsecase(
	slotRepo domain.SlotRepository,
	frameRepo domain.TimeFrameRepository,
	eventLog logger.FrameEventLogger,
	slotMetrics *metrics.SlotMetrics) *DefaultTimeFrameUsecase {

	return &DefaultTimeFrameUsecase{
		SlotRepo:  slotRepo,
		FrameRepo: frameRepo,
		EventLog:  eventLog,
		Metrics:   slotMetrics,
	}
}

func (uc *DefaultTimeFrameUsecase) ListSlotFrames(ctx context.Context, slotID string) ([]*domain.TimeFrame, error) {
	return uc.FrameRepo.ListFramesBySlot(ctx, slotID)
}

func (uc *DefaultTimeFrameUsecase) OpenSlotFrame(ctx context.Context, slotID string) (*domain.TimeFrame, error) {
	return uc.FrameRepo.OpenFrameBySlot(ctx, slotID)
}

func (uc *DefaultTimeFrameUsecase) JustifyFrames(ctx context.Context, frameAID, frameBID string) error {
	frameA, err := uc.FrameRepo.GetFrameByID(ctx, frameAID)
	if err != nil {
		return err
	}
	frameB, err := uc.FrameRepo.GetFrameByID(ctx, frameBID)
	if err != nil {
		return err
	}
	return Justify(frameA, frameB)
}
