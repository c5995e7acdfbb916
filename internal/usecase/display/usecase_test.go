package display

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tencoupons/slot-service/internal/domain"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/models"
	"github.com/tencoupons/slot-service/internal/infrastructure/postgres/repository"
	"github.com/tencoupons/slot-service/internal/usecase/slot"
	"github.com/tencoupons/slot-service/internal/usecase/timeframe"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	displaydto "github.com/tencoupons/slot-service/internal/usecase/dto/display"
	slotdto "github.com/tencoupons/slot-service/internal/usecase/dto/slot"
)

type stubOwners struct {
	allow bool
}

func (s stubOwners) OwnsBusiness(ctx context.Context, advertiserID, businessID string) (bool, error) {
	return s.allow, nil
}

func (s stubOwners) OwnsCoupon(ctx context.Context, advertiserID, couponID string) (bool, error) {
	return s.allow, nil
}

type testEnv struct {
	display *DefaultDisplayUsecase
	slots   slot.SlotUsecase
	frames  timeframe.TimeFrameUsecase
	coupons domain.CouponRepository
	db      *gorm.DB
}

func newTestEnv(t *testing.T, allowOwnership bool) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.SlotModel{},
		&models.SlotTimeFrameModel{},
		&models.CouponModel{},
		&models.FlyerPlacementModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	slotRepo := repository.NewDefaultSlotRepository(db)
	frameRepo := repository.NewDefaultTimeFrameRepository(db)
	couponRepo, err := repository.NewDefaultCouponRepository(db)
	if err != nil {
		t.Fatalf("failed to init coupon repo: %v", err)
	}

	slotUC := slot.NewDefaultSlotUsecase(slotRepo, frameRepo, couponRepo, nil)
	frameUC := timeframe.NewDefaultTimeFrameUsecase(slotRepo, frameRepo, nil, nil)
	displayUC := NewDefaultDisplayUsecase(slotUC, frameUC, couponRepo, stubOwners{allow: allowOwnership}, nil, nil)

	return &testEnv{
		display: displayUC,
		slots:   slotUC,
		frames:  frameUC,
		coupons: couponRepo,
		db:      db,
	}
}

func (env *testEnv) seedHead(t *testing.T, businessID string) *domain.Slot {
	t.Helper()
	today := domain.DateOf(time.Now())
	head, err := env.slots.CreateHeadSlot(context.Background(), &slotdto.CreateHeadSlotInput{
		BusinessID: businessID,
		SiteID:     2,
		StartDate:  today.AddDate(0, 0, -10),
		EndDate:    today.AddDate(0, 0, 60),
	})
	if err != nil {
		t.Fatalf("failed to seed head slot: %v", err)
	}
	return head
}

func (env *testEnv) seedCoupon(t *testing.T, businessID string, expiration time.Time) *domain.Coupon {
	t.Helper()
	coupon := &domain.Coupon{
		ID:             uuid.New().String(),
		BusinessID:     businessID,
		ExpirationDate: expiration,
	}
	if err := env.coupons.CreateCoupon(context.Background(), coupon); err != nil {
		t.Fatalf("failed to seed coupon: %v", err)
	}
	return coupon
}

func TestTurnOn_ReusesIdleHead(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	out, err := env.display.TurnOn(context.Background(), &displaydto.TurnOnInput{
		AdvertiserID: "adv-1",
		BusinessID:   "biz-1",
		CouponID:     coupon.ID,
	})
	if err != nil {
		t.Fatalf("turn on failed: %v", err)
	}
	if out.PurchaseRequired {
		t.Fatalf("an idle head must not require a purchase")
	}
	if out.SlotID != head.ID {
		t.Fatalf("expected coupon on head %s, got %s", head.ID, out.SlotID)
	}

	active, err := env.slots.GetActiveCoupon(context.Background(), head.ID)
	if err != nil {
		t.Fatalf("active coupon lookup failed: %v", err)
	}
	if active == nil || active.ID != coupon.ID {
		t.Fatalf("expected coupon %s displaying, got %+v", coupon.ID, active)
	}
}

func TestTurnOn_BumpsExpiredCoupon(t *testing.T) {
	env := newTestEnv(t, true)
	env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, -5))

	out, err := env.display.TurnOn(context.Background(), &displaydto.TurnOnInput{
		AdvertiserID: "adv-1",
		BusinessID:   "biz-1",
		CouponID:     coupon.ID,
	})
	if err != nil {
		t.Fatalf("turn on failed: %v", err)
	}

	wantExpiration := domain.DefaultExpirationDate(time.Now())
	if !out.ExpirationDate.Equal(wantExpiration) {
		t.Fatalf("expected bumped expiration %v, got %v", wantExpiration, out.ExpirationDate)
	}

	stored, err := env.coupons.GetCouponByID(context.Background(), coupon.ID)
	if err != nil {
		t.Fatalf("failed to reload coupon: %v", err)
	}
	if !stored.ExpirationDate.Equal(wantExpiration) {
		t.Fatalf("bump must be persisted, got %v", stored.ExpirationDate)
	}
}

func TestTurnOn_PurchaseRequiredWhenEveryFamilyFull(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	// Fill the family: head plus the maximum children, all displaying.
	if _, err := env.frames.OpenFrame(context.Background(), head.ID, "coupon-head", time.Time{}); err != nil {
		t.Fatalf("failed to occupy head: %v", err)
	}
	today := domain.DateOf(time.Now())
	for i := 0; i < domain.MaxChildrenPerFamily; i++ {
		child, err := env.slots.CreateChildSlot(context.Background(), &slotdto.CreateChildSlotInput{
			ParentSlotID: head.ID,
			StartDate:    today.AddDate(0, 0, -10),
		})
		if err != nil {
			t.Fatalf("failed to create child %d: %v", i, err)
		}
		if _, err := env.frames.OpenFrame(context.Background(), child.ID, fmt.Sprintf("coupon-%d", i), time.Time{}); err != nil {
			t.Fatalf("failed to occupy child %d: %v", i, err)
		}
	}

	out, err := env.display.TurnOn(context.Background(), &displaydto.TurnOnInput{
		AdvertiserID: "adv-1",
		BusinessID:   "biz-1",
		CouponID:     coupon.ID,
	})
	if err != nil {
		t.Fatalf("turn on must not error when full: %v", err)
	}
	if !out.PurchaseRequired {
		t.Fatalf("expected purchase required, got %+v", out)
	}
	if out.SlotID != "" || out.FrameID != "" {
		t.Fatalf("purchase required must change nothing, got %+v", out)
	}
}

func TestTurnOn_DeniedWithoutOwnership(t *testing.T) {
	env := newTestEnv(t, false)
	env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	_, err := env.display.TurnOn(context.Background(), &displaydto.TurnOnInput{
		AdvertiserID: "adv-2",
		BusinessID:   "biz-1",
		CouponID:     coupon.ID,
	})
	if !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
}

func TestTurnOff_ClosesOpenFrame(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	out, err := env.display.TurnOn(context.Background(), &displaydto.TurnOnInput{
		AdvertiserID: "adv-1",
		BusinessID:   "biz-1",
		CouponID:     coupon.ID,
	})
	if err != nil {
		t.Fatalf("turn on failed: %v", err)
	}

	err = env.display.TurnOff(context.Background(), &displaydto.TurnOffInput{
		AdvertiserID: "adv-1",
		CouponID:     coupon.ID,
		SlotID:       out.SlotID,
	})
	if err != nil {
		t.Fatalf("turn off failed: %v", err)
	}

	active, err := env.slots.HasActiveTimeFrame(context.Background(), head.ID)
	if err != nil {
		t.Fatalf("active check failed: %v", err)
	}
	if active {
		t.Fatalf("slot must be idle after turn off")
	}
}

func TestTurnOff_OtherCouponsDisplayDenied(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")
	displayed := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))
	other := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	if _, err := env.frames.OpenFrame(context.Background(), head.ID, displayed.ID, time.Time{}); err != nil {
		t.Fatalf("failed to open frame: %v", err)
	}

	// The slot is displaying a different coupon; owning "other" must not
	// be enough to close it.
	err := env.display.TurnOff(context.Background(), &displaydto.TurnOffInput{
		AdvertiserID: "adv-1",
		CouponID:     other.ID,
		SlotID:       head.ID,
	})
	if !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}

	active, err := env.slots.HasActiveTimeFrame(context.Background(), head.ID)
	if err != nil {
		t.Fatalf("active check failed: %v", err)
	}
	if !active {
		t.Fatalf("the displayed frame must stay open")
	}
}

func TestTurnOff_NoOpenFrameIsNoError(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")
	coupon := env.seedCoupon(t, "biz-1", domain.DateOf(time.Now()).AddDate(0, 0, 30))

	err := env.display.TurnOff(context.Background(), &displaydto.TurnOffInput{
		AdvertiserID: "adv-1",
		CouponID:     coupon.ID,
		SlotID:       head.ID,
	})
	if err != nil {
		t.Fatalf("turning off an idle slot must not error, got %v", err)
	}
}

func TestRenew_ExtendsThroughWorkflow(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")

	renewed, err := env.display.Renew(context.Background(), "adv-1", head.ID)
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	want := domain.NextEndDate(head.EndDate)
	if !renewed.EndDate.Equal(want) {
		t.Fatalf("expected end date %v, got %v", want, renewed.EndDate)
	}
}

func TestSetAutorenew_ForeignBusinessDenied(t *testing.T) {
	env := newTestEnv(t, true)
	head := env.seedHead(t, "biz-1")

	err := env.display.SetAutorenew(context.Background(), "adv-1", "biz-2", head.ID, true)
	if !errors.Is(err, domain.ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}

	if err := env.display.SetAutorenew(context.Background(), "adv-1", "biz-1", head.ID, true); err != nil {
		t.Fatalf("autorenew toggle failed: %v", err)
	}
	reloaded, err := env.slots.GetSlotByID(context.Background(), head.ID)
	if err != nil {
		t.Fatalf("failed to reload slot: %v", err)
	}
	if !reloaded.IsAutorenew {
		t.Fatalf("autorenew flag must be persisted")
	}
}
