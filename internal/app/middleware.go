package app

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

type contextKey string

const memberIDContextKey = contextKey("memberID")

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requireMember extracts the member identity set by the authenticating
// reverse proxy. Requests without it never reach the engine in production;
// rejecting here keeps local calls honest.
func (app *Application) requireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		memberID, err := strconv.Atoi(r.Header.Get("X-Member-ID"))
		if err != nil || memberID < 1 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), memberIDContextKey, memberID)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}

func (app *Application) contextGetMemberId(r *http.Request) int {
	memberID, ok := r.Context().Value(memberIDContextKey).(int)
	if !ok {
		panic("missing member id from context")
	}

	return memberID
}
