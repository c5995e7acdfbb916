package slot

import (
	"testing"
	"time"

	"github.com/tencoupons/slot-service/internal/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func validSlot() *domain.Slot {
	return &domain.Slot{
		ID:         "slot-1",
		BusinessID: "biz-1",
		SiteID:     2,
		StartDate:  day(2025, 6, 1),
		EndDate:    day(2025, 12, 31),
		Role:       domain.HeadRole(),
	}
}

func expectSlotRule(t *testing.T, err error, rule string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected rule %q, got nil", rule)
	}
	if got := domain.ViolatedRule(err); got != rule {
		t.Fatalf("expected rule %q, got %q (%v)", rule, got, err)
	}
}

func TestCheckSlot_Valid(t *testing.T) {
	if err := CheckSlot(validSlot(), nil, nil, false); err != nil {
		t.Fatalf("expected valid slot, got %v", err)
	}
}

func TestCheckSlot_DefaultSite(t *testing.T) {
	s := validSlot()
	s.SiteID = domain.DefaultSiteID
	expectSlotRule(t, CheckSlot(s, nil, nil, false), domain.RuleDefaultSite)
}

func TestCheckSlot_ZeroEndDate(t *testing.T) {
	s := validSlot()
	s.EndDate = time.Time{}
	expectSlotRule(t, CheckSlot(s, nil, nil, false), domain.RuleDateRange)
}

func TestCheckSlot_InvertedRange(t *testing.T) {
	s := validSlot()
	s.StartDate, s.EndDate = s.EndDate, s.StartDate
	expectSlotRule(t, CheckSlot(s, nil, nil, false), domain.RuleDateRange)
}

func TestCheckSlot_ZeroLengthRange(t *testing.T) {
	s := validSlot()
	s.EndDate = s.StartDate
	expectSlotRule(t, CheckSlot(s, nil, nil, false), domain.RuleDateRange)
}

func TestCheckSlot_SiteLockedByPlacements(t *testing.T) {
	original := validSlot()
	s := validSlot()
	s.SiteID = 3
	expectSlotRule(t, CheckSlot(s, original, nil, true), domain.RuleSiteLocked)
}

func TestCheckSlot_SiteChangeWithoutPlacements(t *testing.T) {
	original := validSlot()
	s := validSlot()
	s.SiteID = 3
	if err := CheckSlot(s, original, nil, false); err != nil {
		t.Fatalf("site change without placements must pass, got %v", err)
	}
}

func TestCheckSlot_StartAfterExistingFrame(t *testing.T) {
	s := validSlot()
	frames := []*domain.TimeFrame{{
		ID:      "f1",
		SlotID:  s.ID,
		StartAt: day(2025, 6, 10),
		Window:  domain.ClosedWindow(day(2025, 6, 20)),
	}}
	s.StartDate = day(2025, 6, 15)
	expectSlotRule(t, CheckSlot(s, validSlot(), frames, false), domain.RuleStartAfterFrame)
}

func TestCheckSlot_EndBeforeExistingFrame(t *testing.T) {
	s := validSlot()
	frames := []*domain.TimeFrame{{
		ID:      "f1",
		SlotID:  s.ID,
		StartAt: day(2025, 6, 10),
		Window:  domain.ClosedWindow(day(2025, 11, 20)),
	}}
	s.EndDate = day(2025, 11, 1)
	expectSlotRule(t, CheckSlot(s, validSlot(), frames, false), domain.RuleEndBeforeFrame)
}

func TestCheckSlot_OpenFrameDoesNotBoundEnd(t *testing.T) {
	s := validSlot()
	frames := []*domain.TimeFrame{{
		ID:      "f1",
		SlotID:  s.ID,
		StartAt: day(2025, 6, 10),
		Window:  domain.OpenWindow(),
	}}
	s.EndDate = day(2025, 7, 1)
	if err := CheckSlot(s, validSlot(), frames, false); err != nil {
		t.Fatalf("an open frame must not pin the slot end date, got %v", err)
	}
}
