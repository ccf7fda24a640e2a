package repository

import (
	"context"
	"time"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatHoldRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatHoldRepository(db *pgxpool.Pool) *PostgresSeatHoldRepository {
	return &PostgresSeatHoldRepository{
		db: db,
	}
}

// LockSeatHolds acquires exclusive row locks on the requested holds within
// the caller's transaction. ORDER BY id makes the database grant locks in a
// single global order, so two requests over overlapping seat sets can never
// deadlock each other.
func (p *PostgresSeatHoldRepository) LockSeatHolds(ctx context.Context, tx pgx.Tx, ids []int) ([]domain.SeatHold, error) {
	query := `
		SELECT ss.id, ss.session_id, ss.seat_id, s.seat_row, s.seat_col, s.category, ss.status, ss.reserved_expires_at
		FROM session_seats ss
		JOIN seats s ON ss.seat_id = s.id
		WHERE ss.id = ANY($1)
		ORDER BY ss.id
		FOR UPDATE OF ss
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holds := make([]domain.SeatHold, 0, len(ids))

	for rows.Next() {
		var hold domain.SeatHold

		err = rows.Scan(
			&hold.ID,
			&hold.SessionID,
			&hold.SeatID,
			&hold.Row,
			&hold.Col,
			&hold.Category,
			&hold.Status,
			&hold.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}

const releaseSeatsQuery = `
	UPDATE session_seats
	SET status = 'AVAILABLE', reserved_expires_at = NULL
	WHERE id = ANY($1)
`

// releaseSeatsInTx is the transactional form used by the order state
// machine so seat release commits or rolls back with the order transition.
func releaseSeatsInTx(ctx context.Context, tx pgx.Tx, ids []int) error {
	_, err := tx.Exec(ctx, releaseSeatsQuery, ids)
	return err
}

// releaseLapsedSeatsInTx releases only holds whose lease has already run
// out. Used by reclamation paths that may race a newer reservation which
// took over a lapsed hold: the newer lease has a future expiry and is left
// untouched.
func releaseLapsedSeatsInTx(ctx context.Context, tx pgx.Tx, ids []int, now time.Time) error {
	query := `
		UPDATE session_seats
		SET status = 'AVAILABLE', reserved_expires_at = NULL
		WHERE id = ANY($1)
		  AND status = 'RESERVED'
		  AND reserved_expires_at <= $2
	`

	_, err := tx.Exec(ctx, query, ids, now)
	return err
}

// BulkMaterialize creates one AVAILABLE hold per (session, seat) pair for
// each new session, joining through the session's auditorium. A single
// INSERT ... SELECT avoids per-seat round trips.
func (p *PostgresSeatHoldRepository) BulkMaterialize(ctx context.Context, sessionIDs []int) error {
	query := `
		INSERT INTO session_seats (session_id, seat_id, status)
		SELECT se.id, s.id, 'AVAILABLE'
		FROM sessions se
		JOIN seats s ON s.auditorium_id = se.auditorium_id
		WHERE se.id = ANY($1)
		ON CONFLICT (session_id, seat_id) DO NOTHING
	`

	_, err := p.db.Exec(ctx, query, sessionIDs)
	return err
}

func (p *PostgresSeatHoldRepository) GetSeatMapBySession(ctx context.Context, sessionID int) ([]domain.SeatHold, error) {
	query := `
		SELECT ss.id, ss.session_id, ss.seat_id, s.seat_row, s.seat_col, s.category, ss.status, ss.reserved_expires_at
		FROM session_seats ss
		JOIN seats s ON ss.seat_id = s.id
		WHERE ss.session_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := p.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holds := make([]domain.SeatHold, 0)

	for rows.Next() {
		var hold domain.SeatHold

		err = rows.Scan(
			&hold.ID,
			&hold.SessionID,
			&hold.SeatID,
			&hold.Row,
			&hold.Col,
			&hold.Category,
			&hold.Status,
			&hold.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holds, nil
}
