package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresOrderRepository struct {
	db        *pgxpool.Pool
	seatHolds domain.SeatHoldRepository
}

func NewPostgresOrderRepository(db *pgxpool.Pool, seatHolds domain.SeatHoldRepository) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:        db,
		seatHolds: seatHolds,
	}
}

// CreateReservation is the reservation transaction: lock the requested
// holds in ID order, verify every one of them is (logically) available,
// flip them to RESERVED with the shared expiry, and persist the PENDING
// order with its priced line items. Any failure rolls the whole attempt
// back.
func (p *PostgresOrderRepository) CreateReservation(
	ctx context.Context,
	res domain.Reservation,
	expiresAt time.Time) (*domain.Order, error) {

	ids := make([]int, len(res.SeatHoldIDs))
	copy(ids, res.SeatHoldIDs)
	sort.Ints(ids)

	var order *domain.Order

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		holds, err := p.seatHolds.LockSeatHolds(ctx, tx, ids)
		if err != nil {
			return err
		}

		if len(holds) != len(ids) {
			return domain.ErrRecordNotFound
		}

		now := time.Now()
		for _, hold := range holds {
			if hold.SessionID != res.SessionID {
				return domain.ErrRecordNotFound
			}
			if !hold.Available(now) {
				return fmt.Errorf("%w: row %d seat %d", domain.ErrSeatConflict, hold.Row, hold.Col)
			}
		}

		_, err = tx.Exec(ctx, `
			UPDATE session_seats
			SET status = 'RESERVED', reserved_expires_at = $1
			WHERE id = ANY($2)
		`, expiresAt, ids)
		if err != nil {
			return err
		}

		items, subtotal, err := buildLineItems(ctx, tx, res, holds)
		if err != nil {
			return err
		}

		created := &domain.Order{
			MemberID:       res.MemberID,
			SessionID:      res.SessionID,
			Status:         domain.OrderStatusPending,
			PaymentMethod:  res.PaymentMethod,
			TicketSubtotal: subtotal,
			DiscountTotal:  decimal.Zero,
			TotalAmount:    subtotal,
			Items:          items,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO orders (member_id, session_id, status, payment_method, ticket_subtotal, discount_total, total_amount, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at
		`,
			created.MemberID,
			created.SessionID,
			created.Status,
			created.PaymentMethod,
			created.TicketSubtotal,
			created.DiscountTotal,
			created.TotalAmount,
			expiresAt,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		itemRows := make([][]any, 0, len(items))
		for _, item := range items {
			itemRows = append(itemRows, []any{
				created.ID,
				item.SeatHoldID,
				item.TicketTypeID,
				item.UnitPrice,
				item.Status,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"order_items"},
			[]string{"order_id", "session_seat_id", "ticket_type_id", "unit_price", "status"},
			pgx.CopyFromRows(itemRows),
		)
		if err != nil {
			return err
		}

		order = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// buildLineItems expands the ticket selections into one ACTIVE item per
// locked seat, in lock order, validating each ticket type exists.
func buildLineItems(
	ctx context.Context,
	tx pgx.Tx,
	res domain.Reservation,
	holds []domain.SeatHold) ([]domain.OrderItem, decimal.Decimal, error) {

	items := make([]domain.OrderItem, 0, len(holds))
	subtotal := decimal.Zero
	seatIndex := 0

	for _, sel := range res.Tickets {
		var (
			typeName string
			price    decimal.Decimal
		)

		err := tx.QueryRow(ctx, `SELECT name, price FROM ticket_types WHERE id = $1`, sel.TicketTypeID).Scan(&typeName, &price)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, decimal.Zero, fmt.Errorf("ticket type %d: %w", sel.TicketTypeID, domain.ErrRecordNotFound)
			}
			return nil, decimal.Zero, err
		}

		for i := 0; i < sel.Quantity; i++ {
			hold := holds[seatIndex]
			seatIndex++

			items = append(items, domain.OrderItem{
				SeatHoldID:     hold.ID,
				TicketTypeID:   sel.TicketTypeID,
				TicketTypeName: typeName,
				UnitPrice:      price,
				Status:         domain.ItemStatusActive,
				Row:            hold.Row,
				Col:            hold.Col,
			})

			subtotal = subtotal.Add(price)
		}
	}

	return items, subtotal, nil
}

type lockedOrder struct {
	domain.Order
	ExpiresAt        time.Time
	SessionStartTime time.Time
	MovieID          int
}

// lockOrder reads an order FOR UPDATE so status checks and the following
// mutation happen with no observable window in between.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int) (*lockedOrder, error) {
	query := `
		SELECT o.id, o.member_id, o.session_id, o.status, o.payment_method,
		       o.ticket_subtotal, o.discount_total, o.total_amount,
		       o.coupon_claim_id, o.payment_txn_id, o.paid_at, o.expires_at,
		       s.start_time, s.movie_id
		FROM orders o
		JOIN sessions s ON o.session_id = s.id
		WHERE o.id = $1
		FOR UPDATE OF o
	`

	var o lockedOrder

	err := tx.QueryRow(ctx, query, orderID).Scan(
		&o.ID,
		&o.MemberID,
		&o.SessionID,
		&o.Status,
		&o.PaymentMethod,
		&o.TicketSubtotal,
		&o.DiscountTotal,
		&o.TotalAmount,
		&o.CouponClaimID,
		&o.PaymentTxnID,
		&o.PaidAt,
		&o.ExpiresAt,
		&o.SessionStartTime,
		&o.MovieID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &o, nil
}

func orderSeatHoldIDs(ctx context.Context, tx pgx.Tx, orderID int) ([]int, error) {
	rows, err := tx.Query(ctx, `SELECT session_seat_id FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func detachItems(ctx context.Context, tx pgx.Tx, orderID int, status domain.ItemStatus) error {
	_, err := tx.Exec(ctx, `
		UPDATE order_items
		SET order_id = NULL, status = $1
		WHERE order_id = $2
	`, status, orderID)

	return err
}

func revertClaim(ctx context.Context, tx pgx.Tx, claimID int) error {
	_, err := tx.Exec(ctx, `
		UPDATE coupon_claims
		SET status = 'UNUSED', used_at = NULL
		WHERE id = $1
	`, claimID)

	return err
}

// Finalize applies at most one coupon claim and recomputes the payable
// amount. The claim row is re-read under lock and gated on UNUSED at
// mutation time, so stock and claim state cannot change underneath the
// check.
func (p *PostgresOrderRepository) Finalize(
	ctx context.Context,
	orderID, memberID int,
	couponClaimID *int) (*domain.CheckoutSummary, error) {

	var summary *domain.CheckoutSummary

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.MemberID != memberID {
			return domain.ErrForbidden
		}
		if order.Status != domain.OrderStatusPending {
			return domain.ErrOrderStateConflict
		}
		if !order.ExpiresAt.After(time.Now()) {
			return domain.ErrHoldExpired
		}

		discount := decimal.Zero

		if couponClaimID != nil {
			if order.CouponClaimID != nil && *order.CouponClaimID != *couponClaimID {
				return domain.ErrOrderStateConflict
			}

			discount, err = consumeClaim(ctx, tx, order, memberID, *couponClaimID)
			if err != nil {
				return err
			}
		} else if order.CouponClaimID != nil {
			// Checking out again without the claim hands it back, so it can
			// still fund another order.
			if err := revertClaim(ctx, tx, *order.CouponClaimID); err != nil {
				return err
			}
		}

		total := order.TicketSubtotal.Sub(discount)
		if total.IsNegative() {
			total = decimal.Zero
		}

		_, err = tx.Exec(ctx, `
			UPDATE orders
			SET discount_total = $1, total_amount = $2, coupon_claim_id = $3, updated_at = NOW()
			WHERE id = $4
		`, discount, total, couponClaimID, orderID)
		if err != nil {
			return err
		}

		items, err := loadItems(ctx, tx, orderID)
		if err != nil {
			return err
		}

		summary = &domain.CheckoutSummary{
			OrderID:         orderID,
			PayableAmount:   total,
			ItemDescription: domain.ItemDescription(items),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// consumeClaim locks the claim row, verifies ownership, UNUSED status,
// eligibility and minimum spend, then flips it to USED. A re-finalize with
// the claim already bound to this order recomputes without double-spending.
func consumeClaim(
	ctx context.Context,
	tx pgx.Tx,
	order *lockedOrder,
	memberID, claimID int) (decimal.Decimal, error) {

	query := `
		SELECT mc.member_id, mc.status,
		       c.id, c.discount_type, c.discount_value, c.minimum_spend,
		       c.movie_id, c.session_id, c.min_member_tier, c.active
		FROM coupon_claims mc
		JOIN coupons c ON mc.coupon_id = c.id
		WHERE mc.id = $1
		FOR UPDATE OF mc
	`

	var (
		claimMemberID int
		claimStatus   domain.ClaimStatus
		coupon        domain.Coupon
	)

	err := tx.QueryRow(ctx, query, claimID).Scan(
		&claimMemberID,
		&claimStatus,
		&coupon.ID,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinimumSpend,
		&coupon.MovieID,
		&coupon.SessionID,
		&coupon.MinMemberTier,
		&coupon.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrRecordNotFound
		}
		return decimal.Zero, err
	}

	if claimMemberID != memberID {
		return decimal.Zero, domain.ErrForbidden
	}

	if !coupon.Active {
		return decimal.Zero, domain.ErrCouponInactive
	}

	alreadyBound := order.CouponClaimID != nil && *order.CouponClaimID == claimID

	if claimStatus != domain.ClaimStatusUnused && !alreadyBound {
		return decimal.Zero, domain.ErrCouponAlreadyUsed
	}

	var memberTier int
	err = tx.QueryRow(ctx, `SELECT tier FROM members WHERE id = $1`, memberID).Scan(&memberTier)
	if err != nil {
		return decimal.Zero, err
	}

	if !coupon.EligibleFor(order.MovieID, order.SessionID, memberTier) {
		return decimal.Zero, domain.ErrCouponNotUsable
	}
	if !coupon.Usable(order.TicketSubtotal) {
		return decimal.Zero, domain.ErrCouponNotUsable
	}

	if !alreadyBound {
		_, err = tx.Exec(ctx, `
			UPDATE coupon_claims
			SET status = 'USED', used_at = NOW()
			WHERE id = $1
		`, claimID)
		if err != nil {
			return decimal.Zero, err
		}
	}

	return coupon.Discount(order.TicketSubtotal), nil
}

// MarkPaid transitions PENDING -> PAID exactly once. Seats move to SOLD and
// shed their expiry so the sweeper never reclaims a paid order's seats.
// Duplicate callbacks find a non-PENDING order and report no transition.
//
// The seat update only touches holds still carrying this order's lease: a
// callback that lands after a lapsed hold was taken over or released must
// not sell someone else's seats, so it fails with ErrHoldExpired and the
// order is left for the sweeper.
func (p *PostgresOrderRepository) MarkPaid(ctx context.Context, orderID int, txnID string) (bool, error) {
	transitioned := false

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.Status != domain.OrderStatusPending {
			return nil
		}

		seatIDs, err := orderSeatHoldIDs(ctx, tx, orderID)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE session_seats
			SET status = 'SOLD', reserved_expires_at = NULL
			WHERE id = ANY($1) AND status = 'RESERVED' AND reserved_expires_at = $2
		`, seatIDs, order.ExpiresAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != int64(len(seatIDs)) {
			return domain.ErrHoldExpired
		}

		_, err = tx.Exec(ctx, `
			UPDATE orders
			SET status = 'PAID', payment_txn_id = $1, paid_at = NOW(), updated_at = NOW()
			WHERE id = $2
		`, txnID, orderID)
		if err != nil {
			return err
		}

		transitioned = true

		return nil
	})

	return transitioned, err
}

// MarkPaymentFailed cancels a PENDING order after a failed or abandoned
// charge: the consumed claim (if any) flips back to UNUSED, items are
// detached, and seats return to the pool. Non-PENDING orders are left
// alone.
func (p *PostgresOrderRepository) MarkPaymentFailed(ctx context.Context, orderID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.Status != domain.OrderStatusPending {
			return nil
		}

		if order.CouponClaimID != nil {
			if err := revertClaim(ctx, tx, *order.CouponClaimID); err != nil {
				return err
			}
		}

		return p.cancelLocked(ctx, tx, order)
	})
}

// Cancel is the user-initiated cancellation. Idempotent: a second cancel,
// or a cancel racing the sweeper, finds a non-PENDING order and does
// nothing.
func (p *PostgresOrderRepository) Cancel(ctx context.Context, orderID, memberID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.MemberID != memberID {
			return domain.ErrForbidden
		}
		if order.Status != domain.OrderStatusPending {
			return nil
		}

		if order.CouponClaimID != nil {
			if err := revertClaim(ctx, tx, *order.CouponClaimID); err != nil {
				return err
			}
		}

		return p.cancelLocked(ctx, tx, order)
	})
}

// cancelLocked performs the shared cancel steps on an order already locked
// and verified PENDING: detach items, release seats, set CANCELLED. A hold
// whose lease already lapsed may have been taken over by a newer
// reservation, so lapsed orders release conditionally.
func (p *PostgresOrderRepository) cancelLocked(ctx context.Context, tx pgx.Tx, order *lockedOrder) error {
	seatIDs, err := orderSeatHoldIDs(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	if err := detachItems(ctx, tx, order.ID, domain.ItemStatusCancelled); err != nil {
		return err
	}

	now := time.Now()
	if order.ExpiresAt.After(now) {
		err = releaseSeatsInTx(ctx, tx, seatIDs)
	} else {
		err = releaseLapsedSeatsInTx(ctx, tx, seatIDs, now)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE orders SET status = 'CANCELLED', updated_at = NOW() WHERE id = $1`, order.ID)

	return err
}

// Refund reverses a PAID order strictly before the refund deadline. Items
// stay attached for the audit trail but are marked REFUNDED; payment
// metadata is cleared.
func (p *PostgresOrderRepository) Refund(ctx context.Context, orderID, memberID int, now time.Time) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.MemberID != memberID {
			return domain.ErrForbidden
		}
		if order.Status != domain.OrderStatusPaid {
			return domain.ErrOrderStateConflict
		}
		if !now.Before(domain.RefundDeadline(order.SessionStartTime)) {
			return domain.ErrRefundWindowClosed
		}

		seatIDs, err := orderSeatHoldIDs(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if err := releaseSeatsInTx(ctx, tx, seatIDs); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE order_items SET status = 'REFUNDED' WHERE order_id = $1`, orderID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE orders
			SET status = 'REFUNDED', payment_txn_id = NULL, paid_at = NULL, updated_at = NOW()
			WHERE id = $1
		`, orderID)

		return err
	})
}

// FindExpired lists PENDING orders whose hold window has elapsed. The order
// row carries a copy of the shared hold expiry so reclamation still finds
// the order after a lapsed hold is taken over by a newer reservation.
func (p *PostgresOrderRepository) FindExpired(ctx context.Context, now time.Time) ([]int, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id FROM orders
		WHERE status = 'PENDING' AND expires_at < $1
		ORDER BY id
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ExpireOrder reclaims one overdue order. It converges with a concurrent
// user cancel: whichever transaction wins the row lock cancels, the other
// sees non-PENDING and does nothing.
func (p *PostgresOrderRepository) ExpireOrder(ctx context.Context, orderID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.Status != domain.OrderStatusPending {
			return nil
		}

		if order.CouponClaimID != nil {
			if err := revertClaim(ctx, tx, *order.CouponClaimID); err != nil {
				return err
			}
		}

		return p.cancelLocked(ctx, tx, order)
	})
}

func loadItems(ctx context.Context, tx pgx.Tx, orderID int) ([]domain.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.session_seat_id, i.ticket_type_id, tt.name, i.unit_price, i.status, s.seat_row, s.seat_col
		FROM order_items i
		JOIN ticket_types tt ON i.ticket_type_id = tt.id
		JOIN session_seats ss ON i.session_seat_id = ss.id
		JOIN seats s ON ss.seat_id = s.id
		WHERE i.order_id = $1
		ORDER BY i.id
	`

	rows, err := tx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)

	for rows.Next() {
		var item domain.OrderItem

		err = rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.SeatHoldID,
			&item.TicketTypeID,
			&item.TicketTypeName,
			&item.UnitPrice,
			&item.Status,
			&item.Row,
			&item.Col,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (p *PostgresOrderRepository) GetById(ctx context.Context, id int) (*domain.Order, error) {
	query := `
		SELECT id, member_id, session_id, status, payment_method,
		       ticket_subtotal, discount_total, total_amount,
		       coupon_claim_id, payment_txn_id, paid_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order

	err := p.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.MemberID,
		&order.SessionID,
		&order.Status,
		&order.PaymentMethod,
		&order.TicketSubtotal,
		&order.DiscountTotal,
		&order.TotalAmount,
		&order.CouponClaimID,
		&order.PaymentTxnID,
		&order.PaidAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (p *PostgresOrderRepository) GetDetail(ctx context.Context, id int) (*domain.OrderDetail, error) {
	query := `
		SELECT o.id, o.member_id, o.session_id, o.status, o.payment_method,
		       o.ticket_subtotal, o.discount_total, o.total_amount,
		       o.coupon_claim_id, o.payment_txn_id, o.paid_at, o.created_at, o.updated_at,
		       m.title, s.start_time,
		       mem.id, mem.email, mem.name, mem.tier,
		       c.name
		FROM orders o
		JOIN sessions s ON o.session_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN members mem ON o.member_id = mem.id
		LEFT JOIN coupon_claims mc ON o.coupon_claim_id = mc.id
		LEFT JOIN coupons c ON mc.coupon_id = c.id
		WHERE o.id = $1
	`

	var detail domain.OrderDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.MemberID,
		&detail.SessionID,
		&detail.Status,
		&detail.PaymentMethod,
		&detail.TicketSubtotal,
		&detail.DiscountTotal,
		&detail.TotalAmount,
		&detail.CouponClaimID,
		&detail.PaymentTxnID,
		&detail.PaidAt,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.MovieTitle,
		&detail.SessionStartTime,
		&detail.Member.ID,
		&detail.Member.Email,
		&detail.Member.Name,
		&detail.Member.Tier,
		&detail.CouponName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	rows, err := p.db.Query(ctx, `
		SELECT i.id, i.order_id, i.session_seat_id, i.ticket_type_id, tt.name, i.unit_price, i.status, s.seat_row, s.seat_col
		FROM order_items i
		JOIN ticket_types tt ON i.ticket_type_id = tt.id
		JOIN session_seats ss ON i.session_seat_id = ss.id
		JOIN seats s ON ss.seat_id = s.id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem

		err = rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.SeatHoldID,
			&item.TicketTypeID,
			&item.TicketTypeName,
			&item.UnitPrice,
			&item.Status,
			&item.Row,
			&item.Col,
		)
		if err != nil {
			return nil, err
		}

		detail.Items = append(detail.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (p *PostgresOrderRepository) GetHistoryByMemberId(
	ctx context.Context,
	memberID int,
	pagination domain.Pagination) ([]domain.OrderDetail, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(),
		       o.id, o.member_id, o.session_id, o.status, o.payment_method,
		       o.ticket_subtotal, o.discount_total, o.total_amount, o.created_at, o.updated_at,
		       m.title, s.start_time
		FROM orders o
		JOIN sessions s ON o.session_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE o.member_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, memberID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	orders := make([]domain.OrderDetail, 0)
	totalRecords := 0

	for rows.Next() {
		var detail domain.OrderDetail

		err = rows.Scan(
			&totalRecords,
			&detail.ID,
			&detail.MemberID,
			&detail.SessionID,
			&detail.Status,
			&detail.PaymentMethod,
			&detail.TicketSubtotal,
			&detail.DiscountTotal,
			&detail.TotalAmount,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.MovieTitle,
			&detail.SessionStartTime,
		)
		if err != nil {
			return nil, nil, err
		}

		orders = append(orders, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return orders, metadata, nil
}
