package domain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusSold      SeatStatus = "SOLD"
)

// Seat is a physical seat in an auditorium. Immutable once created.
type Seat struct {
	ID           int
	AuditoriumID int
	Row          int
	Col          int
	Category     string
}

// SeatHold is the per-session, per-seat inventory record. Its status is the
// single source of truth for availability; a RESERVED hold whose expiry has
// passed counts as available even before the sweeper resets it.
type SeatHold struct {
	ID        int
	SessionID int
	SeatID    int
	Row       int
	Col       int
	Category  string
	Status    SeatStatus
	ExpiresAt *time.Time
}

// Available reports logical availability at the given instant.
func (h SeatHold) Available(now time.Time) bool {
	if h.Status == SeatStatusAvailable {
		return true
	}
	if h.Status == SeatStatusReserved && h.ExpiresAt != nil && now.After(*h.ExpiresAt) {
		return true
	}
	return false
}

type SeatHoldRepository interface {
	// LockSeatHolds acquires row locks on the given holds for the duration
	// of tx. Locks are granted in ascending hold ID order regardless of the
	// order of ids, so overlapping reservation attempts cannot deadlock.
	LockSeatHolds(ctx context.Context, tx pgx.Tx, ids []int) ([]SeatHold, error)

	// BulkMaterialize creates one AVAILABLE hold per (session, seat) pair
	// for every seat of each session's auditorium, in a single statement.
	BulkMaterialize(ctx context.Context, sessionIDs []int) error

	GetSeatMapBySession(ctx context.Context, sessionID int) ([]SeatHold, error)
}
