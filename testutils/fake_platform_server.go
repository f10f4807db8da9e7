package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed platformdata
var platformdata embed.FS

// Credentials and codes the fake servers accept.
const (
	TestRainAPIKey  = "test-rain-api-key"
	TestClashToken  = "test-clash-token"
	TestCSGOBigCode = "good-code"

	// LimitedCSGOBigCode makes the fake csgobig server answer with its
	// body-level rate limit error.
	LimitedCSGOBigCode = "limited-code"
)

// FakePlatformServer serves canned responses for all three upstream
// platforms from one httptest server.
type FakePlatformServer struct {
	s *httptest.Server
}

func NewFakePlatformServer() *FakePlatformServer {
	r := chi.NewRouter()

	r.Get("/v1/affiliates/leaderboard", rainLeaderboardHandler)
	r.Get("/api/affiliates/leaderboards/my-leaderboards-api", clashLeaderboardsHandler)
	r.Get("/api/partners/getRefDetails/{code}", csgobigRefDetailsHandler)

	return &FakePlatformServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakePlatformServer) Close() {
	f.s.Close()
}

func (f *FakePlatformServer) URL() string {
	return f.s.URL
}

func rainLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-api-key") != TestRainAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
		return
	}
	if r.URL.Query().Get("code") == "" || r.URL.Query().Get("start_date") == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"missing parameters"}`))
		return
	}
	serveFile(w, "rain.json")
}

func clashLeaderboardsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != fmt.Sprintf("Bearer %s", TestClashToken) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid token"}`))
		return
	}
	serveFile(w, "clash.json")
}

func csgobigRefDetailsHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	switch code {
	case TestCSGOBigCode:
		serveFile(w, "csgobig.json")
	case LimitedCSGOBigCode:
		serveFile(w, "csgobig_ratelimit.json")
	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":false,"error":"invalid referral code"}`))
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := platformdata.ReadFile(fmt.Sprintf("platformdata/%s", name))
	if err != nil {
		log.Printf("error reading platformdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
