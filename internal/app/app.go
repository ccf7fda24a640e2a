package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/fluxcinema/ticketing-system/internal/domain"
	"github.com/fluxcinema/ticketing-system/internal/mailer"
	"github.com/fluxcinema/ticketing-system/internal/payment"
	"github.com/fluxcinema/ticketing-system/internal/repository"
	appvalidator "github.com/fluxcinema/ticketing-system/internal/validator"
	"github.com/fluxcinema/ticketing-system/internal/vcs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate
	mailer    mailer.Mailer
	metrics   *metrics
	wg        sync.WaitGroup
	sweepMu   sync.Mutex

	memberRepo   domain.MemberRepository
	sessionRepo  domain.SessionRepository
	seatHoldRepo domain.SeatHoldRepository
	orderRepo    domain.OrderRepository
	couponRepo   domain.CouponRepository

	paymentProvider domain.PaymentProvider
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	SweepInterval    time.Duration
	DB               DBConfig
	Redis            RedisConfig
	Smtp             SmtpConfig
	Stripe           StripeConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SmtpConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	SecretKey  string
	SuccessUrl string
	FailureUrl string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	memberRepo domain.MemberRepository,
	sessionRepo domain.SessionRepository,
	seatHoldRepo domain.SeatHoldRepository,
	orderRepo domain.OrderRepository,
	couponRepo domain.CouponRepository,
	paymentProvider domain.PaymentProvider) (*Application, error) {

	m, err := newMetrics()
	if err != nil {
		return nil, err
	}

	return &Application{
		config:          cfg,
		logger:          logger,
		db:              db,
		redis:           redisClient,
		validator:       validator,
		mailer:          mailer,
		metrics:         m,
		memberRepo:      memberRepo,
		sessionRepo:     sessionRepo,
		seatHoldRepo:    seatHoldRepo,
		orderRepo:       orderRepo,
		couponRepo:      couponRepo,
		paymentProvider: paymentProvider,
	}, nil
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")
	flag.DurationVar(&cfg.SweepInterval, "sweep-interval", time.Minute, "Interval between expired-order sweeps")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Smtp.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.Smtp.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.Smtp.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.Smtp.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.Smtp.Sender, "smtp-sender", "Flux Cinema <no-reply@fluxcinema.com>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")
	flag.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://example.com/success.html", "Stripe payment success page")
	flag.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", "https://example.com/failure.html", "Stripe payment failure page")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	seatHoldRepo := repository.NewPostgresSeatHoldRepository(db)

	app, err := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.Sender),
		repository.NewPostgresMemberRepository(db),
		repository.NewPostgresSessionRepository(db),
		seatHoldRepo,
		repository.NewPostgresOrderRepository(db, seatHoldRepo),
		repository.NewPostgresCouponRepository(db),
		payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl),
	)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}
	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	app.background(func() {
		app.runSweeper(sweeperCtx)
	})

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		stopSweeper()
		app.wg.Wait()

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("ticketing-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Route("/sessions/{sessionId}", func(r chi.Router) {
		r.Get("/seats", app.GetSeatMapBySessionHandler)
		r.With(app.requireMember).Post("/reservations", app.CreateReservationHandler)
	})

	r.With(app.requireMember).Route("/orders/{orderNumber}", func(r chi.Router) {
		r.Get("/", app.GetOrderHandler)
		r.Get("/applicable-coupons", app.GetApplicableCouponsHandler)
		r.Post("/checkout", app.CheckoutHandler)
		r.Post("/cancel", app.CancelOrderHandler)
		r.Post("/refund", app.RefundOrderHandler)
	})

	r.With(app.requireMember).Get("/members/me/orders", app.GetOrderHistoryHandler)

	r.Route("/coupons/{couponId}", func(r chi.Router) {
		r.Get("/", app.GetCouponHandler)
		r.With(app.requireMember).Post("/claims", app.ClaimCouponHandler)
	})

	r.Post("/admin/sessions", app.CreateSessionsHandler)

	r.Post("/payments/notify", app.PaymentNotifyHandler)

	return r
}
