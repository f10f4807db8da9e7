package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rosarz/therosarz-site/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, adminSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/api/leaderboard", leaderboardHandler(ctrl, render))

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(secretAuth(adminSecret))
		r.Use(middleware.Timeout(30 * time.Second)) // Refreshes call upstream, allow them longer

		r.Get("/refresh", refreshAllHandler(ctrl, render))
		r.Get("/refresh/{platform}", refreshPlatformHandler(ctrl, render))
	})

	return r
}

// secretAuth guards the admin routes with a shared secret, accepted
// either as a ?secret= query parameter or a bearer token. An empty
// configured secret disables the routes entirely rather than leaving
// them open.
func secretAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || !secretMatches(r, secret) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func secretMatches(r *http.Request, secret string) bool {
	if r.URL.Query().Get("secret") == secret {
		return true
	}
	return r.Header.Get("Authorization") == fmt.Sprintf("Bearer %s", secret)
}
