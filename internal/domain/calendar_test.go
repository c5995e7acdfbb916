package domain

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDateOf_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2025, 6, 15, 1, 30, 45, 0, loc)

	got := DateOf(at)
	want := date(2025, 6, 14)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextEndDate_PlainMonth(t *testing.T) {
	got := NextEndDate(date(2011, 12, 31))
	want := date(2012, 1, 31)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextEndDate_ClampsToShortMonth(t *testing.T) {
	got := NextEndDate(date(2011, 1, 31))
	want := date(2011, 2, 28)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextEndDate_KeepsDayAfterClamp(t *testing.T) {
	got := NextEndDate(date(2011, 2, 28))
	want := date(2011, 3, 28)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextEndDate_LeapFebruary(t *testing.T) {
	got := NextEndDate(date(2012, 1, 31))
	want := date(2012, 2, 29)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNextEndDate_RenewalChain(t *testing.T) {
	want := []time.Time{
		date(2011, 1, 31),
		date(2011, 2, 28),
		date(2011, 3, 28),
		date(2011, 4, 28),
	}

	end := date(2010, 12, 31)
	for i, expected := range want {
		end = NextEndDate(end)
		if !end.Equal(expected) {
			t.Fatalf("renewal %d: expected %v, got %v", i+1, expected, end)
		}
	}
}

func TestCouponExpired(t *testing.T) {
	coupon := &Coupon{ExpirationDate: date(2025, 6, 15)}

	if coupon.Expired(date(2025, 6, 15)) {
		t.Fatalf("coupon expiring today is still valid")
	}
	if !coupon.Expired(date(2025, 6, 16)) {
		t.Fatalf("expected coupon to be expired")
	}
}

func TestSlotCurrent_InclusiveBounds(t *testing.T) {
	slot := &Slot{StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 30)}

	if !slot.Current(date(2025, 6, 1)) {
		t.Fatalf("expected slot current on its start date")
	}
	if !slot.Current(date(2025, 6, 30)) {
		t.Fatalf("expected slot current on its end date")
	}
	if slot.Current(date(2025, 7, 1)) {
		t.Fatalf("expected slot not current past its end date")
	}
}

func TestTimeFrameCovers(t *testing.T) {
	open := &TimeFrame{StartAt: date(2025, 6, 1), Window: OpenWindow()}
	if !open.Covers(date(2030, 1, 1)) {
		t.Fatalf("open frame covers any future instant")
	}
	if open.Covers(date(2025, 5, 31)) {
		t.Fatalf("frame does not cover instants before its start")
	}

	closed := &TimeFrame{StartAt: date(2025, 6, 1), Window: ClosedWindow(date(2025, 6, 10))}
	if closed.Covers(date(2025, 6, 10)) {
		t.Fatalf("half-open interval excludes its end")
	}
	if !closed.Covers(date(2025, 6, 9)) {
		t.Fatalf("expected frame to cover an instant inside the interval")
	}
}
