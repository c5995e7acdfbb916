package display

import (
	"context"
	"log/slog"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/metrics"
	displaydto "github.com/tencoupons/slot-service/internal/usecase/dto/display"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"
)

// DisplayUsecase is the workflow behind the advertiser account actions:
// turn a coupon's display on or off, renew a placement, toggle autorenew.
// Ownership is checked before any slot or time frame logic runs.
type DisplayUsecase interface {
	TurnOn(ctx context.Context, input *displaydto.TurnOnInput) (*displaydto.TurnOnOutput, error)
	TurnOff(ctx context.Context, input *displaydto.TurnOffInput) error
	Renew(ctx context.Context, advertiserID, slotID string) (*domain.Slot, error)
	SetAutorenew(ctx context.Context, advertiserID, businessID, slotID string, on bool) error
}

type DefaultDisplayUsecase struct {
	SlotUsecase  slot.SlotUsecase
	FrameUsecase timeframe.TimeFrameUsecase
	CouponRepo   domain.CouponRepository
	Owners       domain.OwnershipChecker
	Publisher    domain.PublisherPort
	Metrics      *metrics.SlotMetrics
}

func NewDefaultDisplayUsecase(
	slotUsecase slot.SlotUsecase,
	frameUsecase timeframe.TimeFrameUsecase,
	couponRepo domain.CouponRepository,
	owners domain.OwnershipChecker,
	publisher domain.PublisherPort,
	slotMetrics *metrics.SlotMetrics) *DefaultDisplayUsecase {

	return &DefaultDisplayUsecase{
		SlotUsecase:  slotUsecase,
		FrameUsecase: frameUsecase,
		CouponRepo:   couponRepo,
		Owners:       owners,
		Publisher:    publisher,
		Metrics:      slotMetrics,
	}
}

func (uc *DefaultDisplayUsecase) requireBusinessOwner(ctx context.Context, advertiserID, businessID string) error {
	owns, err := uc.Owners.OwnsBusiness(ctx, advertiserID, businessID)
	if err != nil {
		return err
	}
	if !owns {
		return domain.ErrAuthorizationDenied
	}
	return nil
}

func (uc *DefaultDisplayUsecase) requireCouponOwner(ctx context.Context, advertiserID, couponID string) error {
	owns, err := uc.Owners.OwnsCoupon(ctx, advertiserID, couponID)
	if err != nil {
		return err
	}
	if !owns {
		return domain.ErrAuthorizationDenied
	}
	return nil
}

func (uc *DefaultDisplayUsecase) publishEvent(event domain.SlotEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		msg, err := event.AsMessage()
		if err != nil {
			slog.Error("failed to marshal slot event", "event_type", event.EventType, "error", err.Error())
			return
		}
		if err := uc.Publisher.Publish(domain.CouponEventsTopic, msg); err != nil {
			slog.Error("failed to publish slot event", "event_type", event.EventType, "error", err.Error())
		}
	}()
}
