package domain

import "context"

// Member is the slice of the member profile this engine needs: identity,
// contact address for confirmations, and the tier used by coupon
// eligibility. Profile management lives in a separate service.
type Member struct {
	ID    int
	Email string
	Name  string
	Tier  int
}

type MemberRepository interface {
	GetById(ctx context.Context, id int) (*Member, error)
}
