package cache

import (
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rosarz/therosarz-site/model"
)

// Entry is the per-platform cache cell. Key identifies the request
// parameters (affiliate code and date range) the data was fetched for,
// so a parameter change is a miss even inside the TTL.
type Entry struct {
	Data      *model.LeaderboardResponse
	Key       string
	Timestamp time.Time
}

// Fresh reports whether the entry can be served without a refresh.
func (e Entry) Fresh(now time.Time, ttl time.Duration, key string) bool {
	if e.Data == nil || e.Key != key {
		return false
	}
	return now.Sub(e.Timestamp) < ttl
}

// Usable reports whether the entry may still be served as tagged
// fallback data, which is allowed until its age reaches the ceiling.
func (e Entry) Usable(now time.Time, ceiling time.Duration) bool {
	if e.Data == nil {
		return false
	}
	return now.Sub(e.Timestamp) < ceiling
}

// Store holds the last good response per platform. Memory use is
// bounded by the fixed platform set, so entries are only ever
// overwritten, never evicted.
type Store struct {
	clock clock.Clock

	mu      sync.RWMutex
	entries map[model.Platform]Entry
}

func New(clock clock.Clock) *Store {
	return &Store{
		clock:   clock,
		entries: make(map[model.Platform]Entry),
	}
}

func (s *Store) Get(platform model.Platform) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[platform]
	return e, ok
}

// Put overwrites the platform's cell with data fetched now.
func (s *Store) Put(platform model.Platform, key string, data *model.LeaderboardResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[platform] = Entry{
		Data:      data,
		Key:       key,
		Timestamp: s.clock.Now(),
	}
}
