package repository

import (
	"context"
	"errors"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCouponRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCouponRepository(db *pgxpool.Pool) *PostgresCouponRepository {
	return &PostgresCouponRepository{
		db: db,
	}
}

const couponColumns = `
	id, name, description, discount_type, discount_value, minimum_spend,
	per_member_limit, stock, movie_id, session_id, min_member_tier, active
`

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var coupon domain.Coupon

	err := row.Scan(
		&coupon.ID,
		&coupon.Name,
		&coupon.Description,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinimumSpend,
		&coupon.PerMemberLimit,
		&coupon.Stock,
		&coupon.MovieID,
		&coupon.SessionID,
		&coupon.MinMemberTier,
		&coupon.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &coupon, nil
}

func (p *PostgresCouponRepository) GetCouponById(ctx context.Context, id int) (*domain.Coupon, error) {
	row := p.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)
	return scanCoupon(row)
}

// Claim hands one coupon instance to the member. The coupon row is locked
// first so the per-member and total-stock counts cannot be raced past their
// caps by concurrent claims of the same coupon.
func (p *PostgresCouponRepository) Claim(ctx context.Context, memberID, couponID int) (*domain.CouponClaim, error) {
	var claim *domain.CouponClaim

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1 FOR UPDATE`, couponID)

		coupon, err := scanCoupon(row)
		if err != nil {
			return err
		}

		if !coupon.Active {
			return domain.ErrCouponInactive
		}

		var memberClaims, totalClaims int

		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FILTER (WHERE member_id = $1), COUNT(*)
			FROM coupon_claims
			WHERE coupon_id = $2
		`, memberID, couponID).Scan(&memberClaims, &totalClaims)
		if err != nil {
			return err
		}

		if memberClaims >= coupon.PerMemberLimit {
			return domain.ErrClaimLimitReached
		}
		if totalClaims >= coupon.Stock {
			return domain.ErrCouponStockExhausted
		}

		created := &domain.CouponClaim{
			CouponID: couponID,
			MemberID: memberID,
			Status:   domain.ClaimStatusUnused,
			Coupon:   *coupon,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO coupon_claims (coupon_id, member_id, status)
			VALUES ($1, $2, $3)
			RETURNING id, claimed_at
		`, couponID, memberID, created.Status).Scan(&created.ID, &created.ClaimedAt)
		if err != nil {
			return err
		}

		claim = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

func (p *PostgresCouponRepository) GetUnusedClaimsByMember(ctx context.Context, memberID int) ([]domain.CouponClaim, error) {
	query := `
		SELECT mc.id, mc.coupon_id, mc.member_id, mc.status, mc.claimed_at, mc.used_at,
		       c.id, c.name, c.description, c.discount_type, c.discount_value, c.minimum_spend,
		       c.per_member_limit, c.stock, c.movie_id, c.session_id, c.min_member_tier, c.active
		FROM coupon_claims mc
		JOIN coupons c ON mc.coupon_id = c.id
		WHERE mc.member_id = $1 AND mc.status = 'UNUSED' AND c.active
		ORDER BY mc.claimed_at
	`

	rows, err := p.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := make([]domain.CouponClaim, 0)

	for rows.Next() {
		var claim domain.CouponClaim

		err = rows.Scan(
			&claim.ID,
			&claim.CouponID,
			&claim.MemberID,
			&claim.Status,
			&claim.ClaimedAt,
			&claim.UsedAt,
			&claim.Coupon.ID,
			&claim.Coupon.Name,
			&claim.Coupon.Description,
			&claim.Coupon.DiscountType,
			&claim.Coupon.DiscountValue,
			&claim.Coupon.MinimumSpend,
			&claim.Coupon.PerMemberLimit,
			&claim.Coupon.Stock,
			&claim.Coupon.MovieID,
			&claim.Coupon.SessionID,
			&claim.Coupon.MinMemberTier,
			&claim.Coupon.Active,
		)
		if err != nil {
			return nil, err
		}

		claims = append(claims, claim)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return claims, nil
}
