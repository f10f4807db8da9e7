package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rosarz/therosarz-site/cache"
	"github.com/rosarz/therosarz-site/controller"
	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/platforms/clash"
	"github.com/rosarz/therosarz-site/platforms/csgobig"
	"github.com/rosarz/therosarz-site/platforms/rain"
	"github.com/rosarz/therosarz-site/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	rainAPIKey := os.Getenv("RAIN_API_KEY")
	rainCode := os.Getenv("RAIN_CODE")
	clashToken := os.Getenv("CLASH_API_TOKEN")
	csgobigCode := os.Getenv("CSGOBIG_CODE")
	adminSecret := os.Getenv("ADMIN_SECRET")

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	start, err := envDate("PERIOD_START")
	if err != nil {
		log.Fatalf("error parsing PERIOD_START: %v", err)
	}
	end, err := envDate("PERIOD_END")
	if err != nil {
		log.Fatalf("error parsing PERIOD_END: %v", err)
	}

	cfg := controller.Config{
		TTL:                envDuration("CACHE_TTL"),
		StaleCeiling:       envDuration("STALE_CEILING"),
		SnapshotMaxAge:     envDuration("SNAPSHOT_MAX_AGE"),
		RateLimitWindow:    envDuration("RATE_LIMIT_WINDOW"),
		ClashLeaderboardID: os.Getenv("CLASH_LEADERBOARD_ID"),
		Defaults: map[model.Platform]controller.Query{
			model.PlatformRain: {
				Platform: model.PlatformRain,
				Start:    start,
				End:      end,
				Type:     os.Getenv("LEADERBOARD_TYPE"),
				Code:     rainCode,
			},
			model.PlatformClash: {Platform: model.PlatformClash},
			model.PlatformCSGOBig: {
				Platform: model.PlatformCSGOBig,
				Start:    start,
				End:      end,
				Code:     csgobigCode,
			},
		},
	}

	clock := clock.New()
	snapshots, err := cache.NewFileSnapshotStore(dataDir)
	if err != nil {
		log.Fatalf("error creating snapshot store: %v", err)
	}

	rainClient, err := rain.New(rainAPIKey)
	if err != nil {
		log.Fatalf("error creating rain client: %v", err)
	}
	clashClient, err := clash.New(clashToken)
	if err != nil {
		log.Fatalf("error creating clash client: %v", err)
	}
	csgobigClient, err := csgobig.New()
	if err != nil {
		log.Fatalf("error creating csgobig client: %v", err)
	}

	ctrl, err := controller.New(clock, cfg, rainClient, clashClient, csgobigClient, cache.New(clock), snapshots)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl, adminSecret)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	refreshInterval := envDuration("REFRESH_INTERVAL")
	if refreshInterval <= 0 {
		refreshInterval = ctrl.Config().TTL
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that keeps the caches warm so user requests rarely
	// wait on an upstream call.
	wg.Add(1)
	go ctrl.RunPeriodicRefresh(refreshInterval, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

// envDuration reads a duration like "15m" or "24h". Unset or invalid
// values fall back to the controller defaults.
func envDuration(name string) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("ignoring %s=%q: %v", name, v, err)
		return 0
	}
	return d
}

func envDate(name string) (time.Time, error) {
	v := os.Getenv(name)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
