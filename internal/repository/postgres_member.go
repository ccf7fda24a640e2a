package repository

import (
	"context"
	"errors"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMemberRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMemberRepository(db *pgxpool.Pool) *PostgresMemberRepository {
	return &PostgresMemberRepository{
		db: db,
	}
}

func (p *PostgresMemberRepository) GetById(ctx context.Context, id int) (*domain.Member, error) {
	var member domain.Member

	err := p.db.QueryRow(ctx, `SELECT id, email, name, tier FROM members WHERE id = $1`, id).Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&member.Tier,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}

	return &member, nil
}
