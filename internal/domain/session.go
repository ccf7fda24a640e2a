package domain

import (
	"context"
	"time"
)

// Session is a scheduled screening of a movie in an auditorium.
type Session struct {
	ID           int
	MovieID      int
	MovieTitle   string
	AuditoriumID int
	StartTime    time.Time
	EndTime      time.Time
}

type SessionRepository interface {
	GetById(ctx context.Context, id int) (*Session, error)

	// CreateSessions inserts the given screenings and returns their new IDs.
	// Seat inventory is materialized separately via SeatHoldRepository.
	CreateSessions(ctx context.Context, sessions []Session) ([]int, error)
}
