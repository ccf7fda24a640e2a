package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/fluxcinema/ticketing-system/internal/mailer"
)

// paymentAck is the acknowledgement the gateway expects. Anything else makes
// it re-deliver the callback.
const paymentAck = "1|OK"

const paymentSuccessCode = "1"

// PaymentNotifyHandler receives the gateway's server-to-server payment
// result. The gateway sends the order number without its dash and retries
// until it reads the ack, so the handler always acks once the callback is
// parseable; processing failures are logged and resolved by the sweeper.
func (app *Application) PaymentNotifyHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var (
		tradeNo = r.PostForm.Get("MerchantTradeNo")
		rtnCode = r.PostForm.Get("RtnCode")
		txnID   = r.PostForm.Get("TradeNo")
	)

	orderID, err := domain.DecodeOrderNumber(tradeNo)
	if err != nil {
		app.logger.Error("payment callback with unparseable trade number",
			"trade_no", tradeNo, "error", err)
		app.writeAck(w, r)
		return
	}

	if rtnCode == paymentSuccessCode {
		app.handlePaymentSuccess(r, orderID, txnID)
	} else {
		app.handlePaymentFailure(r, orderID, rtnCode)
	}

	app.writeAck(w, r)
}

func (app *Application) handlePaymentSuccess(r *http.Request, orderID int, txnID string) {
	transitioned, err := app.orderRepo.MarkPaid(r.Context(), orderID, txnID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
		case errors.Is(err, domain.ErrHoldExpired):
			// The hold lapsed and the seats moved on before the gateway
			// reported back. The sweeper cancels the order.
			app.logger.Info("payment callback arrived after the seats were lost", "order_id", orderID)
		default:
			app.logError(r, err)
		}
		return
	}

	if !transitioned {
		app.logger.Info("duplicate payment callback ignored", "order_id", orderID)
		return
	}

	app.metrics.paymentsSucceeded.Add(r.Context(), 1)

	app.background(func() {
		app.sendOrderConfirmation(orderID)
	})
}

func (app *Application) handlePaymentFailure(r *http.Request, orderID int, rtnCode string) {
	app.logger.Info("payment failed", "order_id", orderID, "rtn_code", rtnCode)

	err := app.orderRepo.MarkPaymentFailed(r.Context(), orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			app.logError(r, err)
		}
		return
	}

	app.metrics.paymentsFailed.Add(r.Context(), 1)
}

func (app *Application) writeAck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")

	_, err := w.Write([]byte(paymentAck))
	if err != nil {
		app.logError(r, err)
	}
}

func (app *Application) sendOrderConfirmation(orderID int) {
	detail, err := app.orderRepo.GetDetail(context.Background(), orderID)
	if err != nil {
		app.logger.Error("failed to load order for confirmation email", "order_id", orderID, "error", err)
		return
	}

	data := map[string]any{
		"MemberName":       detail.Member.Name,
		"OrderNumber":      domain.EncodeOrderNumber(detail.ID, detail.CreatedAt),
		"MovieTitle":       detail.MovieTitle,
		"SessionStartTime": detail.SessionStartTime.Format("Jan 2, 2006 15:04"),
		"Seats":            seatLabels(detail.Items),
		"TotalAmount":      detail.TotalAmount.String(),
	}

	err = app.mailer.Send(detail.Member.Email, mailer.OrderConfirmationTemplate, data)
	if err != nil {
		app.logger.Error("failed to send confirmation email", "order_id", orderID, "error", err)
	}
}

func seatLabels(items []domain.OrderItem) string {
	labels := ""
	for i, item := range items {
		if i > 0 {
			labels += ", "
		}
		labels += fmt.Sprintf("Row %d Seat %d", item.Row, item.Col)
	}
	return labels
}
