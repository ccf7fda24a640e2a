package app

import (
	"net/http"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
)

// CreateSessionsHandler schedules new screenings and materializes their seat
// inventory from the auditorium layout, so every seat exists as a bookable
// row before the first reservation arrives.
func (app *Application) CreateSessionsHandler(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSessionsRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sessions := make([]domain.Session, len(req.Sessions))
	for i, s := range req.Sessions {
		sessions[i] = domain.Session{
			MovieID:      s.MovieId,
			AuditoriumID: s.AuditoriumId,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
		}
	}

	sessionIDs, err := app.sessionRepo.CreateSessions(r.Context(), sessions)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.seatHoldRepo.BulkMaterialize(r.Context(), sessionIDs)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CreateSessionsResponse{SessionIds: sessionIDs}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
