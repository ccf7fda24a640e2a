package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Seat maps are read far more often than they change, but a stale map only
// costs the client a conflict on reserve. A short TTL keeps the browse
// traffic off Postgres.
const seatMapCacheTTL = 5 * time.Second

func seatMapCacheKey(sessionID int) string {
	return fmt.Sprintf("seatmap:%d", sessionID)
}

func (app *Application) GetSeatMapBySessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cached, err := app.redis.Get(r.Context(), seatMapCacheKey(sessionID)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		app.logger.Warn("seat map cache read failed", "session_id", sessionID, "error", err)
	}

	if len(cached) > 0 {
		var resp api.SeatMapResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			err = app.writeJSON(w, http.StatusOK, resp, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
			return
		}
	}

	holds, err := app.seatHoldRepo.GetSeatMapBySession(r.Context(), sessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(holds) == 0 {
		app.notFoundResponse(w, r)
		return
	}

	resp := toSeatMapResponse(sessionID, holds, time.Now())

	if encoded, err := json.Marshal(resp); err == nil {
		err = app.redis.Set(r.Context(), seatMapCacheKey(sessionID), encoded, seatMapCacheTTL).Err()
		if err != nil {
			app.logger.Warn("seat map cache write failed", "session_id", sessionID, "error", err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(sessionID int, holds []domain.SeatHold, now time.Time) api.SeatMapResponse {
	seats := make([]api.SeatResponse, len(holds))

	for i, hold := range holds {
		seats[i] = api.SeatResponse{
			SeatHoldId: hold.ID,
			Row:        hold.Row,
			Col:        hold.Col,
			Category:   hold.Category,
			Available:  hold.Available(now),
		}
	}

	return api.SeatMapResponse{
		SessionId: sessionID,
		Seats:     seats,
	}
}
