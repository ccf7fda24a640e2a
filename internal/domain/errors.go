package domain

import "errors"

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrForbidden            = errors.New("caller does not own this resource")
	ErrHoldExpired          = errors.New("seat hold has expired")
	ErrSeatConflict         = errors.New("seat is no longer available")
	ErrHoldWindowClosed     = errors.New("hold window is too close to showtime")
	ErrOrderStateConflict   = errors.New("order is not in the expected state")
	ErrCouponNotUsable      = errors.New("order does not meet the coupon conditions")
	ErrCouponAlreadyUsed    = errors.New("coupon claim has already been used")
	ErrClaimLimitReached    = errors.New("per-member claim limit reached")
	ErrCouponStockExhausted = errors.New("coupon stock exhausted")
	ErrCouponInactive       = errors.New("coupon is not active")
	ErrRefundWindowClosed   = errors.New("refund window has closed")
	ErrTicketCountMismatch  = errors.New("ticket quantity does not match seat count")
)
