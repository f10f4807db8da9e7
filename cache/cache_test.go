package cache

import (
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rosarz/therosarz-site/model"
)

const (
	testTTL     = 15 * time.Minute
	testCeiling = 1 * time.Hour
	testKey     = "therosarz_2025-10-03_2025-10-17"
)

func testResponse() *model.LeaderboardResponse {
	return &model.LeaderboardResponse{
		Results:   []model.LeaderboardEntry{{Username: "Al******", Wagered: 100}},
		PrizePool: "500$",
	}
}

func TestStore_getMissing(t *testing.T) {
	s := New(clock.NewMock())

	if _, ok := s.Get(model.PlatformRain); ok {
		t.Fatalf("expected no entry for an empty store")
	}
}

func TestEntry_freshness(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	s.Put(model.PlatformRain, testKey, testResponse())

	e, ok := s.Get(model.PlatformRain)
	if !ok {
		t.Fatalf("expected an entry after Put")
	}
	if !e.Fresh(mock.Now(), testTTL, testKey) {
		t.Errorf("entry should be fresh immediately after Put")
	}

	mock.Add(14 * time.Minute)
	if !e.Fresh(mock.Now(), testTTL, testKey) {
		t.Errorf("entry should still be fresh inside the TTL")
	}

	mock.Add(2 * time.Minute)
	if e.Fresh(mock.Now(), testTTL, testKey) {
		t.Errorf("entry should not be fresh past the TTL")
	}
	if !e.Usable(mock.Now(), testCeiling) {
		t.Errorf("entry should still be usable inside the stale ceiling")
	}

	mock.Add(50 * time.Minute)
	if e.Usable(mock.Now(), testCeiling) {
		t.Errorf("entry should not be usable past the stale ceiling")
	}
}

func TestEntry_keyMismatchIsMiss(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	s.Put(model.PlatformRain, testKey, testResponse())

	e, _ := s.Get(model.PlatformRain)
	if e.Fresh(mock.Now(), testTTL, "othercode_2025-11-01_2025-11-15") {
		t.Errorf("an entry fetched for different parameters must not be fresh")
	}
}

func TestStore_putOverwrites(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	s.Put(model.PlatformClash, testKey, testResponse())
	mock.Add(30 * time.Minute)

	updated := testResponse()
	updated.Results[0].Wagered = 900
	s.Put(model.PlatformClash, testKey, updated)

	e, _ := s.Get(model.PlatformClash)
	if e.Data.Results[0].Wagered != 900 {
		t.Errorf("expected the newer data, got %+v", e.Data.Results[0])
	}
	if !e.Fresh(mock.Now(), testTTL, testKey) {
		t.Errorf("overwritten entry should be fresh again")
	}
}

func TestStore_platformsAreIndependent(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	s.Put(model.PlatformRain, testKey, testResponse())

	if _, ok := s.Get(model.PlatformCSGOBig); ok {
		t.Errorf("a rain write must not populate the csgobig cell")
	}
}
