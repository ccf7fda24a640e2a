package app

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	ordersCreated     metric.Int64Counter
	paymentsSucceeded metric.Int64Counter
	paymentsFailed    metric.Int64Counter
	ordersExpired     metric.Int64Counter
	couponsClaimed    metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	meter := otel.Meter("ticketing-api")

	ordersCreated, err := meter.Int64Counter("orders.created",
		metric.WithDescription("Number of orders created"))
	if err != nil {
		return nil, err
	}

	paymentsSucceeded, err := meter.Int64Counter("payments.succeeded",
		metric.WithDescription("Number of successful payment callbacks"))
	if err != nil {
		return nil, err
	}

	paymentsFailed, err := meter.Int64Counter("payments.failed",
		metric.WithDescription("Number of failed payment callbacks"))
	if err != nil {
		return nil, err
	}

	ordersExpired, err := meter.Int64Counter("orders.expired",
		metric.WithDescription("Number of orders reclaimed by the expiry sweeper"))
	if err != nil {
		return nil, err
	}

	couponsClaimed, err := meter.Int64Counter("coupons.claimed",
		metric.WithDescription("Number of coupon claims issued"))
	if err != nil {
		return nil, err
	}

	return &metrics{
		ordersCreated:     ordersCreated,
		paymentsSucceeded: paymentsSucceeded,
		paymentsFailed:    paymentsFailed,
		ordersExpired:     ordersExpired,
		couponsClaimed:    couponsClaimed,
	}, nil
}
