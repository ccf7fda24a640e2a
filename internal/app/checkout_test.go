package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/fluxcinema/ticketing-system/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CheckoutTestSuite struct {
	suite.Suite
	app             *Application
	orderRepo       *mocks.MockOrderRepo
	memberRepo      *mocks.MockMemberRepo
	paymentProvider *mocks.MockPaymentProvider
}

func (s *CheckoutTestSuite) SetupTest() {
	s.orderRepo = new(mocks.MockOrderRepo)
	s.memberRepo = new(mocks.MockMemberRepo)
	s.paymentProvider = new(mocks.MockPaymentProvider)

	s.app = newTestApplication(func(a *Application) {
		a.orderRepo = s.orderRepo
		a.memberRepo = s.memberRepo
		a.paymentProvider = s.paymentProvider
	})
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) TestCheckoutHandler() {
	orderNumber := domain.EncodeOrderNumber(42, time.Now())
	url := fmt.Sprintf("/orders/%s/checkout", orderNumber)

	summary := &domain.CheckoutSummary{
		OrderID:         42,
		PayableAmount:   decimal.NewFromInt(400),
		ItemDescription: "Adult x 2",
	}

	tests := []struct {
		name           string
		url            string
		body           api.CheckoutRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "should fail for a malformed order number",
			url:        "/orders/garbage/checkout",
			setupMocks: func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "should fail when the order doesn't exist",
			url:  url,
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, (*int)(nil)).
					Return(nil, domain.ErrRecordNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "should fail when the order belongs to another member",
			url:  url,
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, (*int)(nil)).
					Return(nil, domain.ErrForbidden).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "should fail when the hold window already lapsed",
			url:  url,
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, (*int)(nil)).
					Return(nil, domain.ErrHoldExpired).Once()
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "should fail when the coupon claim is already spent",
			url:  url,
			body: api.CheckoutRequest{CouponClaimId: ptr(9)},
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, ptr(9)).
					Return(nil, domain.ErrCouponAlreadyUsed).Once()
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "should fail when the payment provider errors",
			url:  url,
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, (*int)(nil)).
					Return(summary, nil).Once()
				s.memberRepo.On("GetById", mock.Anything, testMemberID).
					Return(&domain.Member{ID: testMemberID, Email: "test@test.com"}, nil).Once()
				s.paymentProvider.On("CreateCheckoutSession", orderNumber, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("payment provider error")).Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should finalize the order and hand off to the provider",
			url:  url,
			body: api.CheckoutRequest{CouponClaimId: ptr(9)},
			setupMocks: func() {
				s.orderRepo.On("Finalize", mock.Anything, 42, testMemberID, ptr(9)).
					Return(summary, nil).Once()
				s.memberRepo.On("GetById", mock.Anything, testMemberID).
					Return(&domain.Member{ID: testMemberID, Email: "test@test.com"}, nil).Once()
				s.paymentProvider.On("CreateCheckoutSession", orderNumber, mock.Anything, mock.Anything, mock.Anything).
					Return(&domain.CheckoutHandoff{
						ProviderRef: "cs_123",
						RedirectURL: "https://payments.example.com/cs_123",
					}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMocks()

			w := executeRequest(s.T(), s.app, http.MethodPost, tt.url, tt.body, testMemberID)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantErrMessage != "" {
				s.Equal(tt.wantErrMessage, decodeErrorMessage(s.T(), w))
			}

			if tt.wantStatus == http.StatusOK {
				var resp api.CheckoutResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(orderNumber, resp.OrderNumber)
				s.True(resp.PayableAmount.Equal(decimal.NewFromInt(400)))
				s.Equal("https://payments.example.com/cs_123", resp.RedirectUrl)
			}

			s.orderRepo.AssertExpectations(s.T())
			s.paymentProvider.AssertExpectations(s.T())
		})
	}
}
