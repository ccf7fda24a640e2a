package app

import (
	"errors"
	"net/http"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
)

func (app *Application) GetCouponHandler(w http.ResponseWriter, r *http.Request) {
	couponID, err := app.readIDParam(r, "couponId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	coupon, err := app.couponRepo.GetCouponById(r.Context(), couponID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CouponResponse{
		CouponId:      coupon.ID,
		Name:          coupon.Name,
		Description:   coupon.Description,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		MinimumSpend:  coupon.MinimumSpend,
		Active:        coupon.Active,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ClaimCouponHandler(w http.ResponseWriter, r *http.Request) {
	couponID, err := app.readIDParam(r, "couponId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	claim, err := app.couponRepo.Claim(r.Context(), app.contextGetMemberId(r), couponID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrCouponInactive),
			errors.Is(err, domain.ErrClaimLimitReached),
			errors.Is(err, domain.ErrCouponStockExhausted):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.couponsClaimed.Add(r.Context(), 1)

	resp := api.CouponClaimResponse{
		ClaimId:   claim.ID,
		CouponId:  claim.CouponID,
		Name:      claim.Coupon.Name,
		Status:    string(claim.Status),
		ClaimedAt: claim.ClaimedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetApplicableCouponsHandler quotes the member's unused claims against a
// pending order: each eligible claim comes back with the concrete discount
// it would produce and whether the order meets its minimum spend.
func (app *Application) GetApplicableCouponsHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := app.orderIDFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	memberID := app.contextGetMemberId(r)

	order, err := app.orderRepo.GetById(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	if order.MemberID != memberID {
		app.forbiddenResponse(w, r)
		return
	}

	session, err := app.sessionRepo.GetById(r.Context(), order.SessionID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	member, err := app.memberRepo.GetById(r.Context(), memberID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	claims, err := app.couponRepo.GetUnusedClaimsByMember(r.Context(), memberID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	coupons := make([]api.ApplicableCouponResponse, 0, len(claims))

	for _, claim := range claims {
		if !claim.Coupon.EligibleFor(session.MovieID, order.SessionID, member.Tier) {
			continue
		}

		coupons = append(coupons, api.ApplicableCouponResponse{
			ClaimId:      claim.ID,
			Name:         claim.Coupon.Name,
			Description:  claim.Coupon.Description,
			Discount:     claim.Coupon.Discount(order.TicketSubtotal),
			MinimumSpend: claim.Coupon.MinimumSpend,
			Usable:       claim.Coupon.Usable(order.TicketSubtotal),
		})
	}

	resp := api.ApplicableCouponsResponse{Coupons: coupons}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
