package app

import (
	"errors"
	"net/http"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CheckoutHandler finalizes a pending order for payment: it applies the
// optional coupon claim, recomputes the payable amount, and hands the order
// off to the payment provider. The order stays PENDING until the provider
// reports back on the notify endpoint.
func (app *Application) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := app.orderIDFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.CheckoutRequest

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

	memberID := app.contextGetMemberId(r)

	summary, err := app.orderRepo.Finalize(r.Context(), orderID, memberID, req.CouponClaimId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrOrderStateConflict),
			errors.Is(err, domain.ErrHoldExpired),
			errors.Is(err, domain.ErrCouponAlreadyUsed),
			errors.Is(err, domain.ErrCouponNotUsable),
			errors.Is(err, domain.ErrCouponInactive):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	member, err := app.memberRepo.GetById(r.Context(), memberID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	orderNumber := chi.URLParam(r, "orderNumber")

	handoff, err := app.paymentProvider.CreateCheckoutSession(
		orderNumber,
		member,
		summary.PayableAmount,
		summary.ItemDescription,
	)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CheckoutResponse{
		OrderNumber:     orderNumber,
		PayableAmount:   summary.PayableAmount,
		ItemDescription: summary.ItemDescription,
		RedirectUrl:     handoff.RedirectURL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
