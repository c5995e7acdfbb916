package slotdto

import "github.com/tencoupons/slot-service/internal/domain"

// FamilyAvailability is the result of scanning a business's current
// families for somewhere to publish a coupon. A nil ParentSlot means every
// family is full and a new purchase is required.
type FamilyAvailability struct {
	ParentSlot      *domain.Slot
	ChildSlot       *domain.Slot
	PublishToParent bool
	PublishToChild  bool
}
