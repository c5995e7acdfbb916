package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrFrameAlreadyClosed  = errors.New("time frame is already closed")
)

// Slot invariant rules.
const (
	RuleDefaultSite     = "site-on-default-site"
	RuleDateRange       = "inverted-or-zero-date-range"
	RuleSiteLocked      = "site-change-after-placement"
	RuleStartAfterFrame = "start-after-existing-frame"
	RuleEndBeforeFrame  = "end-before-existing-frame"
)

// Time frame interval rules.
const (
	RuleFrameBeforeSlot = "start-before-slot-start"
	RuleFrameRange      = "inverted-or-zero-interval"
	RuleDuplicateStart  = "duplicate-start"
	RuleDuplicateEnd    = "duplicate-end"
	RuleOverlap         = "overlap"
	RuleSecondOpen      = "second-open-while-one-open"
)

// InvariantViolation rejects a slot write. The write is never committed and
// never retried automatically.
type InvariantViolation struct {
	Rule    string
	Message string
}

func (e *InvariantViolation) Error() string {
	return e.Message
}

// IntervalConflict rejects a time frame write. The caller resolves the
// conflict and resubmits; the engine never auto-adjusts.
type IntervalConflict struct {
	Rule    string
	Message string
}

func (e *IntervalConflict) Error() string {
	return e.Message
}

func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}

func IsIntervalConflict(err error) bool {
	var ic *IntervalConflict
	return errors.As(err, &ic)
}

// ViolatedRule returns the rule name carried by a validation error, if any.
func ViolatedRule(err error) string {
	var iv *InvariantViolation
	if errors.As(err, &iv) {
		return iv.Rule
	}
	var ic *IntervalConflict
	if errors.As(err, &ic) {
		return ic.Rule
	}
	return ""
}
