package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id int) (*domain.Session, error) {
	query := `
		SELECT s.id, s.movie_id, m.title, s.auditorium_id, s.start_time, s.end_time
		FROM sessions s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var session domain.Session

	err := p.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.MovieTitle,
		&session.AuditoriumID,
		&session.StartTime,
		&session.EndTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &session, nil
}

func (p *PostgresSessionRepository) CreateSessions(ctx context.Context, sessions []domain.Session) ([]int, error) {
	ids := make([]int, 0, len(sessions))

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		for _, session := range sessions {
			var id int

			err := tx.QueryRow(ctx, `
				INSERT INTO sessions (movie_id, auditorium_id, start_time, end_time)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`,
				session.MovieID,
				session.AuditoriumID,
				session.StartTime,
				session.EndTime,
			).Scan(&id)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
					return fmt.Errorf("%w: movie %d or auditorium %d", domain.ErrRecordNotFound, session.MovieID, session.AuditoriumID)
				}
				return err
			}

			ids = append(ids, id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
