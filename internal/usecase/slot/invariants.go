package slot

import (
	"github.com/tencoupons/slot-service/internal/domain"
)

// CheckSlot validates a slot against the persisted state it would commit
// into. original is the currently stored row for an update (nil on create),
// frames the slot's existing time frames, hasPlacements whether any flyer
// placement references the slot. Failure of any rule aborts the whole
// write.
func CheckSlot(slot *domain.Slot, original *domain.Slot, frames []*domain.TimeFrame, hasPlacements bool) error {
	if original != nil && hasPlacements && slot.SiteID != original.SiteID {
		return &domain.InvariantViolation{
			Rule:    domain.RuleSiteLocked,
			Message: "cannot change the site of a slot with flyer placements",
		}
	}
	if slot.SiteID == domain.DefaultSiteID {
		return &domain.InvariantViolation{
			Rule:    domain.RuleDefaultSite,
			Message: "no slots for the default site",
		}
	}
	if slot.EndDate.IsZero() || !slot.StartDate.Before(slot.EndDate) {
		return &domain.InvariantViolation{
			Rule:    domain.RuleDateRange,
			Message: "a slot must start strictly before it ends",
		}
	}
	for _, frame := range frames {
		if frame.StartAt.Before(slot.StartDate) {
			return &domain.InvariantViolation{
				Rule:    domain.RuleStartAfterFrame,
				Message: "a slot cannot begin after a related time frame starts",
			}
		}
		if end, closed := frame.Window.End(); closed && end.After(slot.EndDate) {
			return &domain.InvariantViolation{
				Rule:    domain.RuleEndBeforeFrame,
				Message: "a slot cannot end before a related time frame ends",
			}
		}
	}
	return nil
}
