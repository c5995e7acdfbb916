package timeframe

import (
	"fmt"

	"github.com/tencoupons/slot-service/internal/domain"
)

// ValidateFrame checks a candidate time frame (new or modified) against its
// slot and the sibling frames already persisted for that slot. The sibling
// set must always form disjoint half-open intervals, an open window reading
// as +infinity. All comparisons are read-only; the candidate is accepted or
// rejected, never adjusted.
func ValidateFrame(slot *domain.Slot, frame *domain.TimeFrame, siblings []*domain.TimeFrame) error {
	if frame.StartAt.Before(slot.StartDate) {
		return &domain.IntervalConflict{
			Rule:    domain.RuleFrameBeforeSlot,
			Message: "a slot time frame cannot begin before the slot",
		}
	}
	if end, closed := frame.Window.End(); closed && !end.After(frame.StartAt) {
		return &domain.IntervalConflict{
			Rule:    domain.RuleFrameRange,
			Message: "a time frame cannot end on or before its start",
		}
	}
	for _, other := range siblings {
		if other.ID == frame.ID {
			continue
		}
		if frame.StartAt.Equal(other.StartAt) {
			return &domain.IntervalConflict{
				Rule:    domain.RuleDuplicateStart,
				Message: "time frames of a slot cannot begin at the same time",
			}
		}
		if end, closed := frame.Window.End(); closed {
			if otherEnd, otherClosed := other.Window.End(); otherClosed && end.Equal(otherEnd) {
				return &domain.IntervalConflict{
					Rule:    domain.RuleDuplicateEnd,
					Message: "time frames of a slot cannot end at the same time",
				}
			}
		}
		if frame.Window.IsOpen() && other.Window.IsOpen() {
			return &domain.IntervalConflict{
				Rule:    domain.RuleSecondOpen,
				Message: "slot already has an open time frame",
			}
		}
		if framesOverlap(frame, other) {
			return &domain.IntervalConflict{
				Rule:    domain.RuleOverlap,
				Message: fmt.Sprintf("time frame overlaps frame %s", other.ID),
			}
		}
	}
	return nil
}

// Justify reconciles two specific frames of the same slot, used when an
// adjacent closed interval is being superseded. Disjoint frames are a
// no-op; conflicting frames fail and the caller must close or adjust
// before resubmitting. Nothing is ever merged or mutated here.
func Justify(a, b *domain.TimeFrame) error {
	if a.SlotID != b.SlotID {
		return fmt.Errorf("cannot justify frames of different slots")
	}
	if !framesOverlap(a, b) {
		return nil
	}
	return &domain.IntervalConflict{
		Rule:    domain.RuleOverlap,
		Message: fmt.Sprintf("time frames %s and %s overlap", a.ID, b.ID),
	}
}

// framesOverlap reports whether two half-open intervals intersect. Exact
// abutment at a boundary is not an overlap.
func framesOverlap(a, b *domain.TimeFrame) bool {
	return startsBeforeEndOf(a, b) && startsBeforeEndOf(b, a)
}

func startsBeforeEndOf(x, y *domain.TimeFrame) bool {
	end, closed := y.Window.End()
	return !closed || x.StartAt.Before(end)
}
