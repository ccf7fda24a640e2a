package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fluxcinema/ticketing-system/api"
	"github.com/fluxcinema/ticketing-system/internal/mailer"
	"github.com/fluxcinema/ticketing-system/internal/validator"
)

const testMemberID = 7

func newTestApplication(opts ...func(*Application)) *Application {
	m, err := newMetrics()
	if err != nil {
		panic(err)
	}

	app := &Application{
		config:    Config{Env: "test", SweepInterval: time.Minute},
		validator: validator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:   m,
		mailer:    mailer.NewMockMailer(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, app *Application, method, url string, body any, memberID int) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	} else {
		reader = strings.NewReader("")
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	if memberID > 0 {
		r.Header.Set("X-Member-ID", strconv.Itoa(memberID))
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func decodeErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	return errorResp.Message
}

func ptr[T any](v T) *T {
	return &v
}
