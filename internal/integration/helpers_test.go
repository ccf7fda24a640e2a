package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// fixture is the seed data most scenarios start from: one member, one
// two-hour session in a 2x3 auditorium, and two ticket types.
type fixture struct {
	MemberID      int
	MovieID       int
	AuditoriumID  int
	SessionID     int
	SeatHoldIDs   []int
	AdultTicketID int
	ChildTicketID int
}

func truncateAll(t testing.TB, app *TestApp) {
	t.Helper()

	ctx := context.Background()

	_, err := app.DB.Exec(ctx, `
		TRUNCATE order_items, orders, coupon_claims, coupons,
			session_seats, sessions, seats, auditoriums,
			ticket_types, movies, members
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushAll(ctx).Err())
	app.Mailer.Reset()
}

func seedBaseline(t testing.TB, app *TestApp, sessionStart time.Time) fixture {
	t.Helper()

	ctx := context.Background()
	f := fixture{}

	f.MemberID = seedMember(t, app, 1)

	err := app.DB.QueryRow(ctx, `
		INSERT INTO movies (title, duration_minutes) VALUES ('Arrival', 116) RETURNING id
	`).Scan(&f.MovieID)
	require.NoError(t, err)

	err = app.DB.QueryRow(ctx, `
		INSERT INTO auditoriums (name) VALUES ('Hall 1') RETURNING id
	`).Scan(&f.AuditoriumID)
	require.NoError(t, err)

	for row := 1; row <= 2; row++ {
		for col := 1; col <= 3; col++ {
			_, err = app.DB.Exec(ctx, `
				INSERT INTO seats (auditorium_id, seat_row, seat_col) VALUES ($1, $2, $3)
			`, f.AuditoriumID, row, col)
			require.NoError(t, err)
		}
	}

	err = app.DB.QueryRow(ctx, `
		INSERT INTO sessions (movie_id, auditorium_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, f.MovieID, f.AuditoriumID, sessionStart, sessionStart.Add(2*time.Hour)).Scan(&f.SessionID)
	require.NoError(t, err)

	require.NoError(t, app.SeatHoldRepo.BulkMaterialize(ctx, []int{f.SessionID}))

	rows, err := app.DB.Query(ctx, `
		SELECT ss.id
		FROM session_seats ss
		JOIN seats s ON ss.seat_id = s.id
		WHERE ss.session_id = $1
		ORDER BY s.seat_row, s.seat_col
	`, f.SessionID)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		f.SeatHoldIDs = append(f.SeatHoldIDs, id)
	}
	require.NoError(t, rows.Err())
	require.Len(t, f.SeatHoldIDs, 6)

	err = app.DB.QueryRow(ctx, `
		INSERT INTO ticket_types (name, price) VALUES ('Adult', 250) RETURNING id
	`).Scan(&f.AdultTicketID)
	require.NoError(t, err)

	err = app.DB.QueryRow(ctx, `
		INSERT INTO ticket_types (name, price) VALUES ('Child', 150) RETURNING id
	`).Scan(&f.ChildTicketID)
	require.NoError(t, err)

	return f
}

func seedMember(t testing.TB, app *TestApp, tier int) int {
	t.Helper()

	var id int
	err := app.DB.QueryRow(context.Background(), `
		INSERT INTO members (email, name, tier) VALUES ($1, 'Sam Doe', $2) RETURNING id
	`, uuid.NewString()+"@test.com", tier).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedCoupon(t testing.TB, app *TestApp, discountType string, value decimal.Decimal, stock, perMemberLimit int) int {
	t.Helper()

	var id int
	err := app.DB.QueryRow(context.Background(), `
		INSERT INTO coupons (name, description, discount_type, discount_value, minimum_spend, per_member_limit, stock, active)
		VALUES ($1, 'test coupon', $2, $3, 0, $4, $5, TRUE)
		RETURNING id
	`, fmt.Sprintf("Coupon %s", uuid.NewString()[:8]), discountType, value, perMemberLimit, stock).Scan(&id)
	require.NoError(t, err)

	return id
}

func seatStatuses(t testing.TB, app *TestApp, sessionID int) map[int]string {
	t.Helper()

	rows, err := app.DB.Query(context.Background(), `
		SELECT id, status FROM session_seats WHERE session_id = $1
	`, sessionID)
	require.NoError(t, err)
	defer rows.Close()

	statuses := make(map[int]string)
	for rows.Next() {
		var id int
		var status string
		require.NoError(t, rows.Scan(&id, &status))
		statuses[id] = status
	}
	require.NoError(t, rows.Err())

	return statuses
}

func orderStatus(t testing.TB, app *TestApp, orderID int) string {
	t.Helper()

	var status string
	err := app.DB.QueryRow(context.Background(), `
		SELECT status FROM orders WHERE id = $1
	`, orderID).Scan(&status)
	require.NoError(t, err)

	return status
}

func claimStatus(t testing.TB, app *TestApp, claimID int) string {
	t.Helper()

	var status string
	err := app.DB.QueryRow(context.Background(), `
		SELECT status FROM coupon_claims WHERE id = $1
	`, claimID).Scan(&status)
	require.NoError(t, err)

	return status
}
