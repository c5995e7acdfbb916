package timeframe

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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestUsecase(t *testing.T) *DefaultTimeFrameUsecase {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.SlotModel{}, &models.SlotTimeFrameModel{}, &models.FlyerPlacementModel{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	slotRepo := repository.NewDefaultSlotRepository(db)
	frameRepo := repository.NewDefaultTimeFrameRepository(db)
	return NewDefaultTimeFrameUsecase(slotRepo, frameRepo, nil, nil)
}

func seedSlot(t *testing.T, uc *DefaultTimeFrameUsecase) *domain.Slot {
	t.Helper()
	today := domain.DateOf(time.Now())
	slot := &domain.Slot{
		ID:         uuid.New().String(),
		BusinessID: "biz-1",
		SiteID:     2,
		StartDate:  today.AddDate(0, 0, -10),
		EndDate:    today.AddDate(0, 0, 60),
		Role:       domain.HeadRole(),
	}
	err := uc.SlotRepo.InTx(context.Background(), func(tx domain.SlotTx) error {
		return tx.InsertSlot(slot)
	})
	if err != nil {
		t.Fatalf("failed to seed slot: %v", err)
	}
	return slot
}

func TestOpenFrame_PersistsOpenWindow(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	frame, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", time.Time{})
	if err != nil {
		t.Fatalf("failed to open frame: %v", err)
	}
	if !frame.Window.IsOpen() {
		t.Fatalf("a freshly opened frame must have an open window")
	}

	stored, err := uc.FrameRepo.OpenFrameBySlot(context.Background(), slot.ID)
	if err != nil {
		t.Fatalf("failed to read open frame: %v", err)
	}
	if stored == nil || stored.ID != frame.ID {
		t.Fatalf("expected stored open frame %s, got %+v", frame.ID, stored)
	}
}

func TestOpenFrame_SecondOpenRejected(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	if _, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", time.Time{}); err != nil {
		t.Fatalf("failed to open first frame: %v", err)
	}
	_, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-2", time.Time{})
	if got := domain.ViolatedRule(err); got != domain.RuleSecondOpen {
		t.Fatalf("expected rule %q, got %q (%v)", domain.RuleSecondOpen, got, err)
	}
}

func TestOpenFrame_BeforeSlotStartRejected(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	_, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", slot.StartDate.AddDate(0, 0, -1))
	if got := domain.ViolatedRule(err); got != domain.RuleFrameBeforeSlot {
		t.Fatalf("expected rule %q, got %q (%v)", domain.RuleFrameBeforeSlot, got, err)
	}
}

func TestOpenFrame_UnknownSlot(t *testing.T) {
	uc := newTestUsecase(t)

	_, err := uc.OpenFrame(context.Background(), uuid.New().String(), "coupon-1", time.Time{})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCloseFrame_Lifecycle(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	opened, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to open frame: %v", err)
	}

	closed, err := uc.CloseFrame(context.Background(), opened.ID, time.Time{})
	if err != nil {
		t.Fatalf("failed to close frame: %v", err)
	}
	end, isClosed := closed.Window.End()
	if !isClosed {
		t.Fatalf("frame must be closed")
	}
	if !end.After(closed.StartAt) {
		t.Fatalf("closed frame must end after its start")
	}

	// Closed frames are immutable history.
	_, err = uc.CloseFrame(context.Background(), opened.ID, time.Now().UTC())
	if !errors.Is(err, domain.ErrFrameAlreadyClosed) {
		t.Fatalf("expected ErrFrameAlreadyClosed, got %v", err)
	}
}

func TestCloseFrame_EndBeforeStartRejected(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	opened, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to open frame: %v", err)
	}

	_, err = uc.CloseFrame(context.Background(), opened.ID, opened.StartAt.Add(-time.Minute))
	if got := domain.ViolatedRule(err); got != domain.RuleFrameRange {
		t.Fatalf("expected rule %q, got %q (%v)", domain.RuleFrameRange, got, err)
	}
}

func TestCloseOpenFrame_NoOpenFrameIsNoOp(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	closed, err := uc.CloseOpenFrame(context.Background(), slot.ID, time.Time{})
	if err != nil {
		t.Fatalf("expected no error on idle slot, got %v", err)
	}
	if closed != nil {
		t.Fatalf("expected nil frame on idle slot, got %+v", closed)
	}
}

func TestCloseOpenFrame_ClosesTheOpenOne(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)

	opened, err := uc.OpenFrame(context.Background(), slot.ID, "coupon-1", time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to open frame: %v", err)
	}

	closed, err := uc.CloseOpenFrame(context.Background(), slot.ID, time.Time{})
	if err != nil {
		t.Fatalf("failed to close open frame: %v", err)
	}
	if closed == nil || closed.ID != opened.ID {
		t.Fatalf("expected frame %s closed, got %+v", opened.ID, closed)
	}

	remaining, err := uc.FrameRepo.OpenFrameBySlot(context.Background(), slot.ID)
	if err != nil {
		t.Fatalf("failed to read open frame: %v", err)
	}
	if remaining != nil {
		t.Fatalf("slot must have no open frame left, got %+v", remaining)
	}
}

func TestHistory_AbuttingFramesAccumulate(t *testing.T) {
	uc := newTestUsecase(t)
	slot := seedSlot(t, uc)
	base := time.Now().UTC().Add(-6 * time.Hour)

	for i := 0; i < 3; i++ {
		opened, err := uc.OpenFrame(context.Background(), slot.ID, fmt.Sprintf("coupon-%d", i), base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("failed to open frame %d: %v", i, err)
		}
		if _, err := uc.CloseFrame(context.Background(), opened.ID, base.Add(time.Duration(i+1)*time.Hour)); err != nil {
			t.Fatalf("failed to close frame %d: %v", i, err)
		}
	}

	frames, err := uc.ListSlotFrames(context.Background(), slot.ID)
	if err != nil {
		t.Fatalf("failed to list frames: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 closed frames, got %d", len(frames))
	}
	for i := 1; i < len(frames); i++ {
		prevEnd, _ := frames[i-1].Window.End()
		if !frames[i].StartAt.Equal(prevEnd) {
			t.Fatalf("expected frame %d to abut its predecessor", i)
		}
	}
}
