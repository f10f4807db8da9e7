package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rosarz/therosarz-site/cache"
	"github.com/rosarz/therosarz-site/model"
)

// ErrNoData is the terminal fallback condition: nothing fresh, stale,
// or durable exists for the platform. This is the only case a caller
// of the leaderboard endpoint sees an error instead of data.
var ErrNoData = errors.New("no leaderboard data available")

// errGateBlocked marks a refresh that was skipped by the local
// rate-limit gate. It routes to the fallback tiers without touching
// the network and is never surfaced past this package.
var errGateBlocked = errors.New("rate limit window has not elapsed")

const fallbackMessage = "Using cached data due to API unavailability"

func (c *controller) GetLeaderboard(ctx context.Context, q Query) (*model.LeaderboardResponse, time.Time, error) {
	key := q.cacheKey()

	if e, ok := c.store.Get(q.Platform); ok && e.Fresh(c.clock.Now(), c.cfg.TTL, key) {
		return e.Data, e.Timestamp, nil
	}

	resp, ts, err := c.refresh(ctx, q)
	if err == nil {
		return resp, ts, nil
	}
	if !errors.Is(err, errGateBlocked) {
		log.Printf("refresh failed for %s: %v", q.Platform, err)
	}

	return c.fallback(ctx, q.Platform, err)
}

// refresh performs one gated fetch+normalize+store cycle and returns
// the fresh response.
func (c *controller) refresh(ctx context.Context, q Query) (*model.LeaderboardResponse, time.Time, error) {
	f := c.getFetcher(q.Platform)

	if f.gated() {
		now := c.clock.Now()
		if last, ok := c.lastAttemptFor(ctx, q.Platform); ok && now.Sub(last) < c.cfg.RateLimitWindow {
			return nil, time.Time{}, fmt.Errorf("%w for %s", errGateBlocked, q.Platform)
		}
		c.recordAttempt(ctx, q.Platform, now)
	}

	entries, err := f.fetch(q)
	if err != nil {
		return nil, time.Time{}, err
	}

	model.SortEntries(entries)
	resp := &model.LeaderboardResponse{
		Results:   entries,
		PrizePool: c.cfg.prizePool(q.Platform),
	}

	now := c.clock.Now()
	c.store.Put(q.Platform, q.cacheKey(), resp)
	c.saveSnapshot(ctx, q.Platform, resp, now)

	return resp, now, nil
}

// fallback walks the degradation tiers in order: in-memory stale data
// within the ceiling, then the durable snapshot within its max age,
// then ErrNoData. Tagging happens on clones so cached data stays
// clean.
func (c *controller) fallback(ctx context.Context, platform model.Platform, cause error) (*model.LeaderboardResponse, time.Time, error) {
	now := c.clock.Now()

	if e, ok := c.store.Get(platform); ok && e.Usable(now, c.cfg.StaleCeiling) {
		resp := e.Data.Clone()
		resp.Fallback = true
		resp.Stale = true
		resp.Message = fallbackMessage
		resp.Source = "memory"
		return resp, e.Timestamp, nil
	}

	rec, err := c.snapshots.Load(ctx, platform)
	if err == nil && rec.Data != nil && now.Sub(rec.Timestamp) < c.cfg.SnapshotMaxAge {
		resp := rec.Data.Clone()
		resp.Fallback = true
		resp.Message = fallbackMessage
		resp.Source = "disk"
		return resp, rec.Timestamp, nil
	}
	if err != nil && !errors.Is(err, cache.ErrSnapshotNotFound) {
		log.Printf("error loading snapshot for %s: %v", platform, err)
	}

	return nil, time.Time{}, fmt.Errorf("%w for %s: %v", ErrNoData, platform, cause)
}

// lastAttemptFor returns when the platform was last called, reading
// the persisted value on first use after a restart.
func (c *controller) lastAttemptFor(ctx context.Context, platform model.Platform) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.lastAttempt[platform]; ok {
		return t, true
	}
	if c.gateLoaded[platform] {
		return time.Time{}, false
	}
	c.gateLoaded[platform] = true

	rec, err := c.snapshots.Load(ctx, platform)
	if err != nil || rec.LastAttempt.IsZero() {
		return time.Time{}, false
	}
	c.lastAttempt[platform] = rec.LastAttempt
	return rec.LastAttempt, true
}

// recordAttempt stamps the gate before the call is made, so a failed
// call still counts against the window, and persists it so restarts
// do not reset the window.
func (c *controller) recordAttempt(ctx context.Context, platform model.Platform, now time.Time) {
	c.mu.Lock()
	c.lastAttempt[platform] = now
	c.gateLoaded[platform] = true
	c.mu.Unlock()

	rec, err := c.snapshots.Load(ctx, platform)
	if err != nil {
		rec = &cache.SnapshotRecord{}
	}
	rec.LastAttempt = now
	if err := c.snapshots.Save(ctx, platform, rec); err != nil {
		log.Printf("error persisting attempt time for %s: %v", platform, err)
	}
}

func (c *controller) saveSnapshot(ctx context.Context, platform model.Platform, resp *model.LeaderboardResponse, now time.Time) {
	rec := &cache.SnapshotRecord{
		Data:      resp,
		Timestamp: now,
	}
	c.mu.Lock()
	rec.LastAttempt = c.lastAttempt[platform]
	c.mu.Unlock()

	if err := c.snapshots.Save(ctx, platform, rec); err != nil {
		log.Printf("error saving snapshot for %s: %v", platform, err)
	}
}

func (c *controller) RefreshLeaderboard(ctx context.Context, platform model.Platform) error {
	q, ok := c.cfg.Defaults[platform]
	if !ok {
		return fmt.Errorf("no refresh defaults configured for %s", platform)
	}
	q.Platform = platform

	_, _, err := c.refresh(ctx, q)
	return err
}

func (c *controller) RefreshAll(ctx context.Context) map[model.Platform]string {
	statuses := make(map[model.Platform]string)
	for _, p := range model.AllPlatforms {
		if _, ok := c.cfg.Defaults[p]; !ok {
			continue
		}
		if err := c.RefreshLeaderboard(ctx, p); err != nil {
			statuses[p] = fmt.Sprintf("FAILED: %v", err)
		} else {
			statuses[p] = "OK"
		}
	}
	return statuses
}

func (c *controller) RunPeriodicRefresh(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

			for p, status := range c.RefreshAll(ctx) {
				if status != "OK" {
					log.Printf("periodic refresh %s: %s", p, status)
				}
			}
			cancel()
		}
	}
}
