package domain

import "time"

// DefaultSiteID is the platform's non-market placeholder site. No slot may
// ever be placed on it.
const DefaultSiteID = 1

// DefaultRenewalRate is the priced tier a new head slot starts on.
const DefaultRenewalRate = 10

// MaxChildrenPerFamily caps a lineage at one head plus nine children.
const MaxChildrenPerFamily = 9

// SlotRole tells whether a slot heads its own lineage or renews an earlier
// generation. Persisted as parent_slot_id, where a head points at itself.
type SlotRole struct {
	parentID string
}

func HeadRole() SlotRole {
	return SlotRole{}
}

func ChildRole(parentID string) SlotRole {
	return SlotRole{parentID: parentID}
}

func (r SlotRole) IsHead() bool {
	return r.parentID == ""
}

// ParentID returns the parent slot id and true for a child role.
func (r SlotRole) ParentID() (string, bool) {
	return r.parentID, r.parentID != ""
}

// Slot is one purchased advertising placement for one business on one
// distribution site. Dates form the half-open range [StartDate, EndDate).
// Slots are never deleted; expiry means EndDate has passed.
type Slot struct {
	ID          string
	BusinessID  string
	SiteID      int64
	StartDate   time.Time
	EndDate     time.Time
	RenewalRate *float64
	IsAutorenew bool
	Role        SlotRole
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Current reports whether the slot's paid range covers the given day.
func (s *Slot) Current(today time.Time) bool {
	day := DateOf(today)
	return !s.StartDate.After(day) && !s.EndDate.Before(day)
}

// Family is one lineage: a head slot and the children renewing it.
type Family struct {
	Head     *Slot
	Children []*Slot
}

// Size counts every member of the family including the head.
func (f *Family) Size() int {
	return 1 + len(f.Children)
}
