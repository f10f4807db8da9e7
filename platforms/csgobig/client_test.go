package csgobig

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rosarz/therosarz-site/model"
	"github.com/rosarz/therosarz-site/testutils"
)

var (
	testFrom = time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)
	testTo   = time.Date(2025, 10, 17, 23, 59, 59, 0, time.UTC)
)

func TestRefDetails_success(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL())

	results, err := c.RefDetails(testutils.TestCSGOBigCode, testFrom, testTo)
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	expected := []model.LeaderboardEntry{
		{Username: "Ma******", Wagered: 5000.75, Avatar: "https://csgobig.com/assets/img/maverick.png"},
		{Username: "Ne*", Wagered: 12345, Avatar: "https://cdn.example.com/neo.png"},
		{Username: "Us***", Wagered: 100, Avatar: "https://csgobig.com/assets/img/censored_avatar.png"},
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

func TestRefDetails_rateLimited(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL())

	results, err := c.RefDetails(testutils.LimitedCSGOBigCode, testFrom, testTo)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got: %v", err)
	}
	if results != nil {
		t.Fatalf("results should have been nil")
	}
}

func TestRefDetails_reportedFailure(t *testing.T) {
	fake := testutils.NewFakePlatformServer()
	defer fake.Close()

	c := NewForTest(fake.URL())

	_, err := c.RefDetails("bogus-code", testFrom, testTo)
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Fatalf("a generic failure must not look like a rate limit: %v", err)
	}
}

func TestRefDetails_epochMillisRange(t *testing.T) {
	var gotFrom, gotTo string
	fake := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		gotFrom = req.URL.Query().Get("from")
		gotTo = req.URL.Query().Get("to")
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte(`{"success":true,"results":[]}`))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL)

	if _, err := c.RefDetails("code", testFrom, testTo); err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if gotFrom != "1759449600000" {
		t.Errorf("unexpected from value: %s", gotFrom)
	}
	if gotTo != "1760745599000" {
		t.Errorf("unexpected to value: %s", gotTo)
	}
}

func TestRefDetails_httpError(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusServiceUnavailable)
		rw.Write([]byte("maintenance"))
	}))
	defer fake.Close()

	c := NewForTest(fake.URL)

	_, err := c.RefDetails("code", testFrom, testTo)
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
}
