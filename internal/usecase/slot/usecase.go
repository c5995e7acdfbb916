package slot

import (
	"context"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/metrics"
	slotdto "github.com/tencoupons/slot-service/internal/usecase/dto/slot"
)

// SlotUsecase validates and applies every slot write, cascades end date
// changes through lineage children and resolves what a slot currently
// displays.
type SlotUsecase interface {
	CreateHeadSlot(ctx context.Context, input *slotdto.CreateHeadSlotInput) (*domain.Slot, error)
	CreateChildSlot(ctx context.Context, input *slotdto.CreateChildSlotInput) (*domain.Slot, error)

	RenewSlot(ctx context.Context, slotID string) (*domain.Slot, error)
	ChangeEndDate(ctx context.Context, slotID string, newEnd time.Time) (*domain.Slot, error)
	SetAutorenew(ctx context.Context, slotID string, on bool) (*domain.Slot, error)
	TransferSite(ctx context.Context, slotID string, siteID int64) (*domain.Slot, error)

	GetSlotByID(ctx context.Context, slotID string) (*domain.Slot, error)
	FamilyOf(ctx context.Context, slotID string) (*domain.Family, error)
	ListCurrentFamilies(ctx context.Context, businessID string) ([]*domain.Family, error)
	HasActiveTimeFrame(ctx context.Context, slotID string) (bool, error)
	GetActiveCoupon(ctx context.Context, slotID string) (*domain.Coupon, error)

	CheckAvailableFamilySlot(ctx context.Context, businessID string) (*slotdto.FamilyAvailability, error)
	PublishCoupon(ctx context.Context, avail *slotdto.FamilyAvailability, couponID string) (*domain.Slot, *domain.TimeFrame, error)
}

type DefaultSlotUsecase struct {
	SlotRepo   domain.SlotRepository
	FrameRepo  domain.TimeFrameRepository
	CouponRepo domain.CouponRepository
	Metrics    *metrics.SlotMetrics
}

func NewDefaultSlotUsecase(
	slotRepo domain.SlotRepository,
	frameRepo domain.TimeFrameRepository,
	couponRepo domain.CouponRepository,
	slotMetrics *metrics.SlotMetrics) *DefaultSlotUsecase {

	return &DefaultSlotUsecase{
		SlotRepo:   slotRepo,
		FrameRepo:  frameRepo,
		CouponRepo: couponRepo,
		Metrics:    slotMetrics,
	}
}
