package domain

import (
	"context"
	"time"
)

// DefaultExpirationDays is how far out an expired coupon's expiration date
// gets bumped when the advertiser turns its display back on.
const DefaultExpirationDays = 90

// Coupon is the slice of the coupon record this engine cares about.
// Authoring, content and approval state live elsewhere.
type Coupon struct {
	ID             string
	BusinessID     string
	Code           string
	ExpirationDate time.Time
}

// Expired reports whether the coupon's expiration date has passed.
func (c *Coupon) Expired(today time.Time) bool {
	return c.ExpirationDate.Before(DateOf(today))
}

// DefaultExpirationDate returns the platform default expiration relative to
// the given moment.
func DefaultExpirationDate(now time.Time) time.Time {
	return DateOf(now).AddDate(0, 0, DefaultExpirationDays)
}

type CouponRepository interface {
	GetCouponByID(ctx context.Context, couponID string) (*Coupon, error)
	CreateCoupon(ctx context.Context, coupon *Coupon) error
	// BumpExpiration moves the coupon's expiration date forward, used when
	// reactivating an expired coupon.
	BumpExpiration(ctx context.Context, couponID string, newDate time.Time) error
}

// OwnershipChecker answers whether the acting advertiser owns the target
// business or coupon. Enforced at the workflow boundary before any slot or
// time frame logic runs.
type OwnershipChecker interface {
	OwnsBusiness(ctx context.Context, advertiserID, businessID string) (bool, error)
	OwnsCoupon(ctx context.Context, advertiserID, couponID string) (bool, error)
}
