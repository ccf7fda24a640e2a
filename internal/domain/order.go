package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

type ItemStatus string

const (
	ItemStatusActive    ItemStatus = "ACTIVE"
	ItemStatusCancelled ItemStatus = "CANCELLED"
	ItemStatusRefunded  ItemStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "online"
	PaymentMethodCounter PaymentMethod = "counter"
)

const (
	onlineHoldWindow     = 15 * time.Minute
	counterHoldLeadTime  = 30 * time.Minute
	refundCutoffLeadTime = 10 * time.Minute
)

// HoldExpiry computes the hold-expiry for a new reservation. Online payments
// get a fixed window from now; counter payments must be settled before the
// session starts, so the hold runs until 30 minutes before showtime. An
// expiry that is not strictly in the future is rejected.
func HoldExpiry(method PaymentMethod, now, sessionStart time.Time) (time.Time, error) {
	var expiry time.Time

	switch method {
	case PaymentMethodOnline:
		expiry = now.Add(onlineHoldWindow)
	case PaymentMethodCounter:
		expiry = sessionStart.Add(-counterHoldLeadTime)
	default:
		return time.Time{}, fmt.Errorf("unknown payment method %q", method)
	}

	if !expiry.After(now) {
		return time.Time{}, ErrHoldWindowClosed
	}

	return expiry, nil
}

// RefundDeadline is the last instant at which a paid order may be refunded.
func RefundDeadline(sessionStart time.Time) time.Time {
	return sessionStart.Add(-refundCutoffLeadTime)
}

type TicketSelection struct {
	TicketTypeID int
	Quantity     int
}

// Reservation is the validated input of a seat-selection request.
type Reservation struct {
	SessionID     int
	MemberID      int
	SeatHoldIDs   []int
	Tickets       []TicketSelection
	PaymentMethod PaymentMethod
}

// TicketCount returns the total number of tickets across all selections.
func (r Reservation) TicketCount() int {
	n := 0
	for _, t := range r.Tickets {
		n += t.Quantity
	}
	return n
}

type OrderItem struct {
	ID             int
	OrderID        *int
	SeatHoldID     int
	TicketTypeID   int
	TicketTypeName string
	UnitPrice      decimal.Decimal
	Status         ItemStatus
	Row            int
	Col            int
}

type Order struct {
	ID             int
	MemberID       int
	SessionID      int
	Status         OrderStatus
	PaymentMethod  PaymentMethod
	TicketSubtotal decimal.Decimal
	DiscountTotal  decimal.Decimal
	TotalAmount    decimal.Decimal
	CouponClaimID  *int
	PaymentTxnID   *string
	PaidAt         *time.Time
	Items          []OrderItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ItemDescription builds the line-item summary handed to the payment
// gateway: ticket-type names with counts, e.g. "Adult x 2#Child x 1".
func ItemDescription(items []OrderItem) string {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.TicketTypeName]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x %d", name, counts[name]))
	}

	if len(parts) == 0 {
		return "Flux Cinema e-ticket"
	}

	return strings.Join(parts, "#")
}

// CheckoutSummary is the result of finalizing an order for payment.
type CheckoutSummary struct {
	OrderID         int
	PayableAmount   decimal.Decimal
	ItemDescription string
}

// OrderDetail is the full read model for a single order.
type OrderDetail struct {
	Order
	MovieTitle       string
	SessionStartTime time.Time
	Member           Member
	CouponName       *string
}

type OrderRepository interface {
	// CreateReservation runs the full reservation transaction: lock the
	// requested holds, verify availability, reserve them with the given
	// expiry, and persist a PENDING order with priced line items. Returns
	// ErrSeatConflict (wrapped with the first occupied seat) when any hold
	// is taken.
	CreateReservation(ctx context.Context, res Reservation, expiresAt time.Time) (*Order, error)

	GetById(ctx context.Context, id int) (*Order, error)
	GetDetail(ctx context.Context, id int) (*OrderDetail, error)
	GetHistoryByMemberId(ctx context.Context, memberID int, p Pagination) ([]OrderDetail, *Metadata, error)

	// Finalize re-validates ownership and PENDING status, applies at most
	// one coupon claim, and recomputes the payable amount, all in one
	// transaction. The order stays PENDING until the payment callback.
	Finalize(ctx context.Context, orderID, memberID int, couponClaimID *int) (*CheckoutSummary, error)

	// MarkPaid transitions PENDING -> PAID and records the provider
	// transaction. The returned bool reports whether a transition happened;
	// duplicate callbacks return false with no error.
	MarkPaid(ctx context.Context, orderID int, txnID string) (bool, error)

	// MarkPaymentFailed transitions PENDING -> CANCELLED, reverts a
	// consumed coupon claim, and releases the order's seat holds. No-op on
	// non-PENDING orders.
	MarkPaymentFailed(ctx context.Context, orderID int) error

	// Cancel is the user-initiated cancellation: ownership check, bulk seat
	// release, line-item detach, CANCELLED. No-op if already non-PENDING.
	Cancel(ctx context.Context, orderID, memberID int) error

	// Refund transitions PAID -> REFUNDED inside the refund window.
	Refund(ctx context.Context, orderID, memberID int, now time.Time) error

	// FindExpired returns IDs of PENDING orders whose seat holds' expiry
	// has passed.
	FindExpired(ctx context.Context, now time.Time) ([]int, error)

	// ExpireOrder reclaims one overdue order: items -> CANCELLED and
	// detached, holds released, order -> CANCELLED. Safe to race with a
	// user cancel; the second writer is a no-op.
	ExpireOrder(ctx context.Context, orderID int) error
}
