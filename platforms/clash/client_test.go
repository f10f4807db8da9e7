package clash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/testutils"
)

func TestLeaderboard_configuredID(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.TestClashToken)

	results, err := c.Leaderboard("841")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	expected := []model.LeaderboardEntry{
		{Username: "Ka******", Wagered: 1234.56, Avatar: "https://clash.gg/img/kamil.png"},
		{Username: "Ol*", Wagered: 50, Avatar: "https://cdn.clash.gg/avatars/ola.png"},
		{Username: "Us***", Wagered: 0, Avatar: "../bot.png"},
	}

	if len(results) != len(expected) {
		t.Fatalf("wrong number of entries, expected %d, got %d", len(expected), len(results))
	}
	for i, e := range expected {
		if results[i] != e {
			t.Errorf("entry %d: expected %+v, got %+v", i, e, results[i])
		}
	}
}

func TestLeaderboard_noConfiguredID(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.TestClashToken)

	// Without a configured ID the most recently started leaderboard
	// wins, which in the fixture is ID 900.
	results, err := c.Leaderboard("")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("wrong number of entries, expected 1, got %d", len(results))
	}
	if results[0].Username != "Zo***" || results[0].Wagered != 990 {
		t.Errorf("unexpected entry: %+v", results[0])
	}
}

func TestLeaderboard_unknownIDFallsBack(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), testutils.TestClashToken)

	// A configured ID that matches nothing falls back to the most
	// recently started leaderboard instead of failing.
	results, err := c.Leaderboard("1234")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(results) != 1 || results[0].Username != "Zo***" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestLeaderboard_badToken(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL(), "wrong-token")

	results, err := c.Leaderboard("841")
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
	if results != nil {
		t.Fatalf("results should have been nil")
	}
}

func TestLeaderboard_bareArrayPayload(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(`[{"id":7,"startDate":"2025-09-01T00:00:00Z","topPlayers":[{"username":"Marek","wagered":100}]}]`))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL, testutils.TestClashToken)

	results, err := c.Leaderboard("")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(results) != 1 || results[0].Username != "Ma***" || results[0].Wagered != 1 {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestLeaderboard_singleObjectPayload(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(`{"id":7,"topPlayers":[{"username":"Marek","wagered":200}]}`))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL, testutils.TestClashToken)

	results, err := c.Leaderboard("")
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(results) != 1 || results[0].Wagered != 2 {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestLeaderboard_emptyListing(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(`{"data":[]}`))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL, testutils.TestClashToken)

	_, err := c.Leaderboard("")
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
}
