package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
)

func (app *Application) CreateReservationHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := app.readIDParam(r, "sessionId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.CreateReservationRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation := toReservation(req, sessionID, app.contextGetMemberId(r))

	if len(reservation.SeatHoldIDs) != reservation.TicketCount() {
		app.badRequestResponse(w, r, domain.ErrTicketCountMismatch)
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	expiresAt, err := domain.HoldExpiry(reservation.PaymentMethod, time.Now(), session.StartTime)
	if err != nil {
		if errors.Is(err, domain.ErrHoldWindowClosed) {
			app.editConflictResponseWithErr(w, r, err)
			return
		}
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderRepo.CreateReservation(r.Context(), reservation, expiresAt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatConflict):
			app.editConflictResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.ordersCreated.Add(r.Context(), 1)

	// drop the cached seat map so the taken seats show up right away
	err = app.redis.Del(r.Context(), seatMapCacheKey(sessionID)).Err()
	if err != nil {
		app.logger.Warn("seat map cache invalidation failed", "session_id", sessionID, "error", err)
	}

	resp := toOrderResponse(order, &expiresAt)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toReservation(req api.CreateReservationRequest, sessionID, memberID int) domain.Reservation {
	tickets := make([]domain.TicketSelection, len(req.Tickets))
	for i, t := range req.Tickets {
		tickets[i] = domain.TicketSelection{
			TicketTypeID: t.TicketTypeId,
			Quantity:     t.Quantity,
		}
	}

	return domain.Reservation{
		SessionID:     sessionID,
		MemberID:      memberID,
		SeatHoldIDs:   req.SeatIds,
		Tickets:       tickets,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}
}

func toOrderResponse(order *domain.Order, expiresAt *time.Time) api.OrderResponse {
	items := make([]api.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = api.OrderItemResponse{
			TicketType: item.TicketTypeName,
			UnitPrice:  item.UnitPrice,
			Status:     string(item.Status),
			Row:        item.Row,
			Col:        item.Col,
		}
	}

	return api.OrderResponse{
		OrderNumber:    domain.EncodeOrderNumber(order.ID, order.CreatedAt),
		Status:         string(order.Status),
		PaymentMethod:  api.PaymentMethod(order.PaymentMethod),
		TicketSubtotal: order.TicketSubtotal,
		DiscountTotal:  order.DiscountTotal,
		TotalAmount:    order.TotalAmount,
		ExpiresAt:      expiresAt,
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}
