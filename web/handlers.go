package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rosarz/therosarz-site/controller"
	"github.com/rosarz/therosarz-site/model"
	"github.com/unrolled/render"
)

func leaderboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site := r.URL.Query().Get("site")
		platform := model.ParsePlatform(site)
		if platform == model.PLATFORM_UNKNOWN {
			render.JSON(w, http.StatusBadRequest, map[string]any{
				"error": fmt.Sprintf("unknown site: %s", site),
			})
			return
		}

		q, err := buildQuery(platform, r)
		if err != nil {
			render.JSON(w, http.StatusBadRequest, map[string]any{
				"error": err.Error(),
				"site":  string(platform),
			})
			return
		}

		resp, ts, err := ctrl.GetLeaderboard(r.Context(), q)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, controller.ErrNoData) {
				status = http.StatusServiceUnavailable
			}
			render.JSON(w, status, map[string]any{
				"error":   "no leaderboard data available",
				"details": err.Error(),
				"site":    string(platform),
			})
			return
		}

		cfg := ctrl.Config()
		etag := fmt.Sprintf(`"%s-%d"`, platform, ts.Unix())
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", fmt.Sprintf("s-maxage=%d, stale-while-revalidate=%d",
			int(cfg.TTL.Seconds()), int((cfg.StaleCeiling - cfg.TTL).Seconds())))
		w.Header().Set("Last-Modified", ts.UTC().Format(http.TimeFormat))

		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		render.JSON(w, http.StatusOK, resp)
	}
}

// buildQuery validates the request parameters each platform needs.
// Clash selects its leaderboard server side from configuration, so it
// takes no parameters at all.
func buildQuery(platform model.Platform, r *http.Request) (controller.Query, error) {
	q := controller.Query{Platform: platform}
	if platform == model.PlatformClash {
		return q, nil
	}

	var err error
	if q.Start, err = parseDateParam(r, "start_date"); err != nil {
		return controller.Query{}, err
	}
	if q.End, err = parseDateParam(r, "end_date"); err != nil {
		return controller.Query{}, err
	}

	q.Code = r.URL.Query().Get("code")
	if q.Code == "" {
		return controller.Query{}, errors.New("missing required parameter: code")
	}

	q.Type = r.URL.Query().Get("type")
	return q, nil
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, fmt.Errorf("missing required parameter: %s", name)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing %s, expected an ISO-8601 timestamp: %v", name, err)
	}
	return t, nil
}

func refreshAllHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := ctrl.RefreshAll(r.Context())

		render.JSON(w, http.StatusOK, map[string]any{
			"message":   "Leaderboards refreshed",
			"results":   statuses,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func refreshPlatformHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site := chi.URLParam(r, "platform")
		platform := model.ParsePlatform(site)
		if platform == model.PLATFORM_UNKNOWN {
			render.JSON(w, http.StatusBadRequest, map[string]any{
				"error": fmt.Sprintf("unknown site: %s", site),
			})
			return
		}

		status := "OK"
		if err := ctrl.RefreshLeaderboard(r.Context(), platform); err != nil {
			status = fmt.Sprintf("FAILED: %v", err)
		}

		render.JSON(w, http.StatusOK, map[string]any{
			"results":   map[string]string{string(platform): status},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
