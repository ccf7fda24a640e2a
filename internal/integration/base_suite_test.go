package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fluxcinema/ticketing-system/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	dbName         = "ticketing"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

// BaseSuite owns the containers and the app under test. Suites embed it and
// reset state per test with truncateAll.
type BaseSuite struct {
	suite.Suite
	app    *TestApp
	db     *postgres.PostgresContainer
	cache  *tcredis.RedisContainer
	server *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	db, dsn, err := startPostgres(ctx)
	s.Require().NoError(err, "postgres container")
	s.db = db

	cache, cacheAddr, err := startRedis(ctx)
	s.Require().NoError(err, "redis container")
	s.cache = cache

	testApp, err := newTestApp(app.Config{
		Port:          3000,
		Env:           "test",
		SweepInterval: time.Minute,
		DB: app.DBConfig{
			DSN:          dsn,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          cacheAddr,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
	})
	s.Require().NoError(err, "app under test")

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.app != nil {
		s.app.DB.Close()
	}

	if err := testcontainers.TerminateContainer(s.db); err != nil {
		log.Printf("terminating postgres container: %s", err)
	}
	if err := testcontainers.TerminateContainer(s.cache); err != nil {
		log.Printf("terminating redis container: %s", err)
	}
}

// Scenario is a declarative request/response check against the running app.
type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
