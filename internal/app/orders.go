package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

func (app *Application) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := app.orderIDFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.orderRepo.GetDetail(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	if detail.MemberID != app.contextGetMemberId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	resp := toOrderDetailResponse(detail)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := app.orderIDFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.orderRepo.Cancel(r.Context(), orderID, app.contextGetMemberId(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) RefundOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := app.orderIDFromRequest(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.orderRepo.Refund(r.Context(), orderID, app.contextGetMemberId(r), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrOrderStateConflict),
			errors.Is(err, domain.ErrRefundWindowClosed):
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetOrderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	pagination := paginationFromQuery(r)

	orders, metadata, err := app.orderRepo.GetHistoryByMemberId(r.Context(), app.contextGetMemberId(r), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	history := make([]api.OrderDetailResponse, len(orders))
	for i := range orders {
		history[i] = toOrderDetailResponse(&orders[i])
	}

	resp := api.OrderHistoryResponse{
		Orders:   history,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func paginationFromQuery(r *http.Request) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		pagination.Page = page
	}
	if pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && pageSize > 0 && pageSize <= MaxPageSize {
		pagination.PageSize = pageSize
	}

	return pagination
}

func toOrderDetailResponse(detail *domain.OrderDetail) api.OrderDetailResponse {
	return api.OrderDetailResponse{
		OrderResponse:    toOrderResponse(&detail.Order, nil),
		MovieTitle:       detail.MovieTitle,
		SessionStartTime: detail.SessionStartTime,
		CouponName:       detail.CouponName,
	}
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		PageSize:     metadata.PageSize,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		TotalRecords: metadata.TotalRecords,
	}
}
