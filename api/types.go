// Package api defines the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "online"
	PaymentMethodCounter PaymentMethod = "counter"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationErrorResponse struct {
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	RequestId string            `json:"requestId,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	TotalRecords int `json:"totalRecords"`
}

type TicketSelectionRequest struct {
	TicketTypeId int `json:"ticketTypeId" validate:"required,gt=0"`
	Quantity     int `json:"quantity" validate:"required,gt=0"`
}

type CreateReservationRequest struct {
	SeatIds       []int                    `json:"seatIds" validate:"required,min=1,max=6,unique,dive,gt=0"`
	Tickets       []TicketSelectionRequest `json:"tickets" validate:"required,min=1,dive"`
	PaymentMethod PaymentMethod            `json:"paymentMethod" validate:"required,payment_method"`
}

type OrderItemResponse struct {
	TicketType string          `json:"ticketType"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Status     string          `json:"status"`
	Row        int             `json:"row"`
	Col        int             `json:"col"`
}

type OrderResponse struct {
	OrderNumber    string              `json:"orderNumber"`
	Status         string              `json:"status"`
	PaymentMethod  PaymentMethod       `json:"paymentMethod"`
	TicketSubtotal decimal.Decimal     `json:"ticketSubtotal"`
	DiscountTotal  decimal.Decimal     `json:"discountTotal"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	ExpiresAt      *time.Time          `json:"expiresAt,omitempty"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

type OrderDetailResponse struct {
	OrderResponse
	MovieTitle       string    `json:"movieTitle"`
	SessionStartTime time.Time `json:"sessionStartTime"`
	CouponName       *string   `json:"couponName,omitempty"`
}

type OrderHistoryResponse struct {
	Orders   []OrderDetailResponse `json:"orders"`
	Metadata Metadata              `json:"metadata"`
}

type CheckoutRequest struct {
	CouponClaimId *int `json:"couponClaimId,omitempty" validate:"omitempty,gt=0"`
}

type CheckoutResponse struct {
	OrderNumber     string          `json:"orderNumber"`
	PayableAmount   decimal.Decimal `json:"payableAmount"`
	ItemDescription string          `json:"itemDescription"`
	RedirectUrl     string          `json:"redirectUrl,omitempty"`
}

type CouponResponse struct {
	CouponId      int             `json:"couponId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MinimumSpend  decimal.Decimal `json:"minimumSpend"`
	Active        bool            `json:"active"`
}

type CouponClaimResponse struct {
	ClaimId   int       `json:"claimId"`
	CouponId  int       `json:"couponId"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	ClaimedAt time.Time `json:"claimedAt"`
}

type ApplicableCouponResponse struct {
	ClaimId      int             `json:"claimId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	MinimumSpend decimal.Decimal `json:"minimumSpend"`
	Usable       bool            `json:"usable"`
}

type ApplicableCouponsResponse struct {
	Coupons []ApplicableCouponResponse `json:"coupons"`
}

type SeatResponse struct {
	SeatHoldId int    `json:"seatHoldId"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Category   string `json:"category"`
	Available  bool   `json:"available"`
}

type SeatMapResponse struct {
	SessionId int            `json:"sessionId"`
	Seats     []SeatResponse `json:"seats"`
}

type CreateSessionRequest struct {
	MovieId      int       `json:"movieId" validate:"required,gt=0"`
	AuditoriumId int       `json:"auditoriumId" validate:"required,gt=0"`
	StartTime    time.Time `json:"startTime" validate:"required"`
	EndTime      time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}

type CreateSessionsRequest struct {
	Sessions []CreateSessionRequest `json:"sessions" validate:"required,min=1,dive"`
}

type CreateSessionsResponse struct {
	SessionIds []int `json:"sessionIds"`
}
