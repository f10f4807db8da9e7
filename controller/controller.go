package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rosarz/therosarz-site/cache"
	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/platforms/clash"
	"github.com/rosarz/therosarz-site/platforms/csgobig"
	"github.com/rosarz/therosarz-site/platforms/rain"
)

// Query carries the per-request parameters for one platform fetch.
// Clash ignores the date range and code; its leaderboard is selected
// by the configured leaderboard ID instead.
type Query struct {
	Platform model.Platform
	Start    time.Time
	End      time.Time
	Type     string
	Code     string
}

// cacheKey identifies the parameters a cached response was fetched
// for. Changing the code or the date range is a cache miss even
// inside the TTL.
func (q Query) cacheKey() string {
	return fmt.Sprintf("%s_%s_%s", q.Code, q.Start.UTC().Format(time.RFC3339), q.End.UTC().Format(time.RFC3339))
}

// DefaultPrizePools holds the fixed display strings served with each
// platform's leaderboard. They are display copy, not derived from
// upstream data.
var DefaultPrizePools = map[model.Platform]string{
	model.PlatformRain:    "500$",
	model.PlatformClash:   "500$",
	model.PlatformCSGOBig: "750$",
}

type Config struct {
	// TTL is how long a cached response is served without refreshing.
	TTL time.Duration
	// StaleCeiling bounds how old in-memory data may be and still be
	// served, tagged, when a refresh fails.
	StaleCeiling time.Duration
	// SnapshotMaxAge bounds the durable snapshot tier the same way.
	SnapshotMaxAge time.Duration
	// RateLimitWindow is the minimum spacing between csgobig calls,
	// counted per attempt rather than per success.
	RateLimitWindow time.Duration

	// ClashLeaderboardID selects the clash leaderboard to serve.
	// Empty means most-recently-started wins.
	ClashLeaderboardID string

	PrizePools map[model.Platform]string

	// Defaults are the per-platform queries used by the refresh
	// endpoints and the background refresh job.
	Defaults map[model.Platform]Query
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = 15 * time.Minute
	}
	if c.StaleCeiling <= 0 {
		c.StaleCeiling = 1 * time.Hour
	}
	if c.SnapshotMaxAge <= 0 {
		c.SnapshotMaxAge = 24 * time.Hour
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = 15 * time.Minute
	}
	if c.PrizePools == nil {
		c.PrizePools = DefaultPrizePools
	}
	return c
}

func (c Config) prizePool(platform model.Platform) string {
	if p, ok := c.PrizePools[platform]; ok {
		return p
	}
	return DefaultPrizePools[platform]
}

// C encapsulates the leaderboard business logic without worrying
// about any web layers.
type C interface {
	// GetLeaderboard serves a platform's leaderboard, preferring the
	// cache, fetching on expiry, and degrading through the stale and
	// durable tiers on failure. The returned time is when the data
	// was produced, for conditional-request headers.
	GetLeaderboard(ctx context.Context, q Query) (*model.LeaderboardResponse, time.Time, error)

	// RefreshLeaderboard forces a fetch for one platform using its
	// configured default query, ignoring cache freshness. The csgobig
	// rate-limit gate still applies.
	RefreshLeaderboard(ctx context.Context, platform model.Platform) error

	// RefreshAll refreshes every configured platform and reports an
	// OK or FAILED status per platform.
	RefreshAll(ctx context.Context) map[model.Platform]string

	RunPeriodicRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	Config() Config
}

type controller struct {
	clock     clock.Clock
	cfg       Config
	rain      rain.Client
	clash     clash.Client
	csgobig   csgobig.Client
	store     *cache.Store
	snapshots cache.SnapshotStore

	// Gate state for rate-limited platforms, loaded lazily from the
	// snapshot so the window survives process restarts.
	mu          sync.Mutex
	lastAttempt map[model.Platform]time.Time
	gateLoaded  map[model.Platform]bool
}

func New(clock clock.Clock, cfg Config, rain rain.Client, clash clash.Client, csgobig csgobig.Client, store *cache.Store, snapshots cache.SnapshotStore) (C, error) {
	c := &controller{
		clock:       clock,
		cfg:         cfg.withDefaults(),
		rain:        rain,
		clash:       clash,
		csgobig:     csgobig,
		store:       store,
		snapshots:   snapshots,
		lastAttempt: make(map[model.Platform]time.Time),
		gateLoaded:  make(map[model.Platform]bool),
	}
	return c, nil
}

func (c *controller) Config() Config {
	return c.cfg
}

// Upstream calls are platform specific, so grab a fetcher for the
// platform and it will make them. This is internal to the package.
type platformFetcher interface {
	fetch(q Query) ([]model.LeaderboardEntry, error)
	// gated reports whether the platform sits behind the local
	// rate-limit gate.
	gated() bool
}

func (c *controller) getFetcher(platform model.Platform) platformFetcher {
	switch platform {
	case model.PlatformRain:
		return &rainFetcher{c}
	case model.PlatformClash:
		return &clashFetcher{c}
	case model.PlatformCSGOBig:
		return &csgobigFetcher{c}
	default:
		return &nilFetcher{err: fmt.Errorf("%s is not a supported platform", platform)}
	}
}

type rainFetcher struct {
	c *controller
}

func (f *rainFetcher) fetch(q Query) ([]model.LeaderboardEntry, error) {
	return f.c.rain.Leaderboard(q.Start, q.End, q.Type, q.Code)
}

func (f *rainFetcher) gated() bool {
	return false
}

type clashFetcher struct {
	c *controller
}

func (f *clashFetcher) fetch(Query) ([]model.LeaderboardEntry, error) {
	return f.c.clash.Leaderboard(f.c.cfg.ClashLeaderboardID)
}

func (f *clashFetcher) gated() bool {
	return false
}

type csgobigFetcher struct {
	c *controller
}

func (f *csgobigFetcher) fetch(q Query) ([]model.LeaderboardEntry, error) {
	return f.c.csgobig.RefDetails(q.Code, q.Start, q.End)
}

func (f *csgobigFetcher) gated() bool {
	return true
}

// nilFetcher exists so that getFetcher always returns something
// usable and callers need no extra error check.
type nilFetcher struct {
	err error
}

func (f *nilFetcher) fetch(Query) ([]model.LeaderboardEntry, error) {
	return nil, f.err
}

func (f *nilFetcher) gated() bool {
	return false
}
