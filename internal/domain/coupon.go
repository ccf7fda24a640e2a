package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "FIXED"
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

type ClaimStatus string

const (
	ClaimStatusUnused ClaimStatus = "UNUSED"
	ClaimStatusUsed   ClaimStatus = "USED"
)

// Coupon is a discount template. For PERCENTAGE coupons DiscountValue holds
// the percentage of the subtotal the customer still pays: a value of 80
// means "20% off". FIXED coupons subtract DiscountValue outright.
type Coupon struct {
	ID             int
	Name           string
	Description    string
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	MinimumSpend   decimal.Decimal
	PerMemberLimit int
	Stock          int
	MovieID        *int
	SessionID      *int
	MinMemberTier  *int
	Active         bool
}

// EligibleFor checks the coupon's contextual filters against the order's
// session. A coupon with no filters is universally eligible.
func (c Coupon) EligibleFor(movieID, sessionID, memberTier int) bool {
	if c.MovieID != nil && *c.MovieID != movieID {
		return false
	}
	if c.SessionID != nil && *c.SessionID != sessionID {
		return false
	}
	if c.MinMemberTier != nil && memberTier < *c.MinMemberTier {
		return false
	}
	return true
}

// Usable reports whether the pre-discount subtotal meets the minimum spend.
func (c Coupon) Usable(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(c.MinimumSpend)
}

// Discount computes the amount subtracted from subtotal, rounded half-up to
// whole currency units and capped at the subtotal itself.
func (c Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch c.DiscountType {
	case DiscountTypeFixed:
		discount = c.DiscountValue
	case DiscountTypePercentage:
		payPercent := c.DiscountValue
		offPercent := decimal.NewFromInt(100).Sub(payPercent)
		discount = subtotal.Mul(offPercent).Div(decimal.NewFromInt(100)).Round(0)
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// CouponClaim is one member's claimed instance of a coupon. At most one
// claim can be consumed per order, and only the failure path of that order
// can flip it back to UNUSED.
type CouponClaim struct {
	ID        int
	CouponID  int
	MemberID  int
	Status    ClaimStatus
	ClaimedAt time.Time
	UsedAt    *time.Time

	Coupon Coupon
}

// ApplicableCoupon is the quote-time view of a claim against a concrete
// subtotal.
type ApplicableCoupon struct {
	ClaimID      int
	Name         string
	Description  string
	Discount     decimal.Decimal
	MinimumSpend decimal.Decimal
	Usable       bool
}

type CouponRepository interface {
	GetCouponById(ctx context.Context, id int) (*Coupon, error)

	// Claim creates an UNUSED claim for the member, enforcing the
	// per-member limit and total stock by counting existing claims inside
	// the claim transaction.
	Claim(ctx context.Context, memberID, couponID int) (*CouponClaim, error)

	// GetUnusedClaimsByMember returns the member's UNUSED claims with their
	// coupons loaded, for quote-time filtering.
	GetUnusedClaimsByMember(ctx context.Context, memberID int) ([]CouponClaim, error)
}
