package domain

import "time"

// FrameWindow is the closure state of a time frame: open (no known end,
// currently displaying) or closed at a fixed end datetime. Persisted as a
// NULLable end_datetime column.
type FrameWindow struct {
	end    time.Time
	closed bool
}

func OpenWindow() FrameWindow {
	return FrameWindow{}
}

func ClosedWindow(end time.Time) FrameWindow {
	return FrameWindow{end: end, closed: true}
}

func (w FrameWindow) IsOpen() bool {
	return !w.closed
}

// End returns the end datetime and true for a closed window.
func (w FrameWindow) End() (time.Time, bool) {
	return w.end, w.closed
}

// TimeFrame is one contiguous interval during which one coupon occupies a
// slot. Intervals are half-open: [StartAt, end), an open window reading as
// +infinity. Closed frames are immutable history and are never deleted.
type TimeFrame struct {
	ID        string
	SlotID    string
	CouponID  string
	StartAt   time.Time
	Window    FrameWindow
	CreatedAt time.Time
}

// Covers reports whether the frame's interval contains the given instant.
func (f *TimeFrame) Covers(at time.Time) bool {
	if at.Before(f.StartAt) {
		return false
	}
	end, closed := f.Window.End()
	return !closed || at.Before(end)
}
