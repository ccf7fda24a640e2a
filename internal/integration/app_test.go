package integration_test

import (
	"log/slog"
	"os"

	"github.com/fluxcinema/ticketing-system/internal/app"
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/fluxcinema/ticketing-system/internal/mailer"
	"github.com/fluxcinema/ticketing-system/internal/payment"
	"github.com/fluxcinema/ticketing-system/internal/repository"
	appvalidator "github.com/fluxcinema/ticketing-system/internal/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Redis  redis.UniversalClient
	Mailer *mailer.MockMailer

	MemberRepo   domain.MemberRepository
	SessionRepo  domain.SessionRepository
	SeatHoldRepo domain.SeatHoldRepository
	OrderRepo    domain.OrderRepository
	CouponRepo   domain.CouponRepository
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	memberRepo := repository.NewPostgresMemberRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	seatHoldRepo := repository.NewPostgresSeatHoldRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db, seatHoldRepo)
	couponRepo := repository.NewPostgresCouponRepository(db)

	application, err := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		memberRepo,
		sessionRepo,
		seatHoldRepo,
		orderRepo,
		couponRepo,
		payment.NewMockPaymentProvider(),
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TestApp{
		App:          application,
		DB:           db,
		Redis:        redisClient,
		Mailer:       mockMailer,
		MemberRepo:   memberRepo,
		SessionRepo:  sessionRepo,
		SeatHoldRepo: seatHoldRepo,
		OrderRepo:    orderRepo,
		CouponRepo:   couponRepo,
	}, nil
}
